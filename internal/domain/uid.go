package domain

// Uid identifies a directory object (category, device, counter set or
// counter). The zero value is never
// allocated by the allocator and is reserved to mean "unset".
type Uid uint16
