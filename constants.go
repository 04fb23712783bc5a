package ebr

// NumEpochs is the fixed modulus for the global epoch counter and the
// number of parallel retire-list generations each Handle keeps. The
// original algorithm fixes this at 3; nothing in this port depends on a
// different value, so it is a constant rather than a Domain field.
const NumEpochs = 3

// sentinelEpoch is the local-epoch value a control block holds before its
// owning Handle has ever entered a critical region. It is distinct from
// every value in {0, ..., NumEpochs-1}.
const sentinelEpoch = NumEpochs
