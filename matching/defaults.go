package matching

const (
	// defaultOrderBookTaskQueueSize specifies size of queue of tasks which should be performed on single order book.
	defaultOrderBookTaskQueueSize = 256

	// defaultReservedOrderBookSlots specifies initial capacity of the hashmap storing order books by symbol name.
	defaultReservedOrderBookSlots = 64
)
