package flshm

// Region layout. These offsets and sizes come from the original flshm.h and
// are a compatibility contract: they must never change.
const (
	// RegionSize is the total size of the shared-memory region.
	RegionSize = 64528

	// messageTickOffset is the offset of the 32-bit message tick.
	messageTickOffset = 8

	// messageSizeOffset is the offset of the 32-bit serialized frame length.
	messageSizeOffset = 12

	// messageBodyOffset is the offset at which the message frame begins.
	messageBodyOffset = 16

	// MessageMaxSize is the maximum size an encoded frame may occupy,
	// header fields and payload included.
	MessageMaxSize = 40960

	// connectionsOffset is the offset of the connection registry table.
	connectionsOffset = 40976

	// ConnectionsSize is the size in bytes of the connection registry table.
	ConnectionsSize = 23552

	// MaxConnections is the maximum number of registry entries.
	MaxConnections = 8
)

// registryCountOffset and registrySlotSize describe the layout within the
// connections table: a uint32 count followed by MaxConnections fixed-width
// slots.
const (
	registryCountOffset = connectionsOffset
	registrySlotsOffset = connectionsOffset + 4

	// registrySlotSize reserves (ConnectionsSize-4)/MaxConnections bytes
	// per slot: a name budget (registryNameBudget bytes, zero-terminated
	// unless the name fills the whole budget) plus a version byte and a
	// sandbox byte.
	registrySlotSize  = (ConnectionsSize - 4) / MaxConnections
	registryFixedCost = 2 // version byte + sandbox byte
	registryNameBudget = registrySlotSize - registryFixedCost
)
