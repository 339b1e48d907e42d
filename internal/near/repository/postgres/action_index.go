package postgres

import "fmt"

// An action's index in a block packs its chain position into the cursor's uint32:
// shard (8 bits), receipt index in chunk (16 bits), action index in receipt (7 bits)
// and direction (1 bit, outgoing first). Field order keeps the packed value in chain order.
const (
	directionBits = 1
	actionBits    = 7
	receiptBits   = 16
	shardBits     = 8

	actionShift  = directionBits
	receiptShift = actionShift + actionBits
	shardShift   = receiptShift + receiptBits
)

// actionPosition is where an action sits in its block.
type actionPosition struct {
	shard     int64
	receipt   int64
	action    int64
	direction int64
}

func (p actionPosition) pack() (uint32, error) {
	switch {
	case p.shard < 0 || p.shard >= 1<<shardBits:
		return 0, fmt.Errorf("shard id %d out of range", p.shard)
	case p.receipt < 0 || p.receipt >= 1<<receiptBits:
		return 0, fmt.Errorf("receipt index in chunk %d out of range", p.receipt)
	case p.action < 0 || p.action >= 1<<actionBits:
		return 0, fmt.Errorf("action index in receipt %d out of range", p.action)
	case p.direction < 0 || p.direction >= 1<<directionBits:
		return 0, fmt.Errorf("direction rank %d out of range", p.direction)
	}
	return uint32(p.shard)<<shardShift |
		uint32(p.receipt)<<receiptShift |
		uint32(p.action)<<actionShift |
		uint32(p.direction), nil
}

func unpackPosition(index uint32) actionPosition {
	return actionPosition{
		shard:     int64(index >> shardShift),
		receipt:   int64(index>>receiptShift) & (1<<receiptBits - 1),
		action:    int64(index>>actionShift) & (1<<actionBits - 1),
		direction: int64(index) & (1<<directionBits - 1),
	}
}
