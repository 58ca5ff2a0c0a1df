package inversion

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/wyfcoding/inversion/xerrors"
)

// maxTokenSize 是单个记号的长度上限，任何合法的 int 都远短于此。
const maxTokenSize = 4096

// ParseSequence 从 r 中读取以空白或逗号分隔的非负整数。
// 非整数的记号返回 ErrInvalidInput，读取失败按内部错误返回。
func ParseSequence(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, maxTokenSize), maxTokenSize)
	sc.Split(scanNumbers)

	var seq []int
	for sc.Scan() {
		tok := sc.Text()
		v, err := strconv.ParseUint(tok, 10, 0)
		if err != nil || v > uint64(^uint(0)>>1) {
			return nil, notInteger(len(seq), tok)
		}
		seq = append(seq, int(v))
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, notInteger(len(seq), "<oversized token>")
		}
		return nil, xerrors.WrapInternal(err, "read sequence")
	}
	return seq, nil
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// scanNumbers 与 bufio.ScanWords 相同，但逗号也视为分隔符，
// 因此只用逗号分隔的长序列也是逐个数字返回。
func scanNumbers(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !isSeparator(r) {
			break
		}
		start += width
	}
	for i := start; i < len(data); {
		r, width := utf8.DecodeRune(data[i:])
		if isSeparator(r) {
			return i + width, data[start:i], nil
		}
		i += width
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}
