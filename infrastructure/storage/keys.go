package storage

import (
	"fmt"
	"strconv"
)

func docPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("doc:%s:", collection))
}

func docKey(collection, id string) []byte {
	return []byte(fmt.Sprintf("doc:%s:%s", collection, id))
}

func changePrefix(collection string) []byte {
	return []byte(fmt.Sprintf("chg:%s:", collection))
}

// changeKey pads the sequence to 20 digits so lexicographic order is numeric order.
func changeKey(collection string, seq uint64) []byte {
	return []byte(fmt.Sprintf("chg:%s:%020d", collection, seq))
}

func sequenceKey(collection string) []byte {
	return []byte(fmt.Sprintf("seq:%s", collection))
}

func parseSeq(b []byte) (uint64, error) {
	return strconv.ParseUint(string(b), 10, 64)
}

func cursorKey(collection string) []byte {
	return []byte(fmt.Sprintf("cur:%s", collection))
}
