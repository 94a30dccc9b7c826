package afpacket

import "fmt"

const (
	tpacketAlignment = 16      // TPACKET_ALIGNMENT
	tpacketHdrLen    = 52      // TPACKET3_HDRLEN, approximate
	maxBlockSize     = 4 << 20 // 4 MB
)

// recomputeSize sizes the TPACKET_V3 ring for a target memory budget.
//
// PACKET_MMAP requires frameSize to be a multiple of TPACKET_ALIGNMENT and
// blockSize to be a multiple of both the page size and frameSize. The ring
// (blockSize * numBlocks) approximates ringBufferSizeMB, with at least one block.
func recomputeSize(ringBufferSizeMB, snapLen, pageSize int) (frameSize, blockSize, numBlocks int, err error) {
	switch {
	case ringBufferSizeMB <= 0:
		return 0, 0, 0, fmt.Errorf("ringBufferSizeMB must be positive, got %d", ringBufferSizeMB)
	case snapLen <= 0:
		return 0, 0, 0, fmt.Errorf("snapLen must be positive, got %d", snapLen)
	case pageSize <= 0 || pageSize%tpacketAlignment != 0:
		return 0, 0, 0, fmt.Errorf("pageSize must be positive and multiple of %d, got %d", tpacketAlignment, pageSize)
	case pageSize&(pageSize-1) != 0:
		return 0, 0, 0, fmt.Errorf("pageSize must be a power of two, got %d", pageSize)
	}

	frameSize = alignUp(tpacketHdrLen+snapLen, tpacketAlignment)
	blockSize = lcm(pageSize, frameSize)

	if blockSize > maxBlockSize {
		// Page-aligned frames make any multiple of frameSize a valid block.
		frameSize = alignUp(frameSize, pageSize)
		blockSize = frameSize * max(1, maxBlockSize/frameSize)
	}

	numBlocks = max(1, ringBufferSizeMB*1024*1024/blockSize)
	return frameSize, blockSize, numBlocks, nil
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}
