package xerrors

// SequenceMessage 是所有序列校验失败共用的对外消息。
const SequenceMessage = "the sequence has an item not in [1, len(seq)] or duplication"

const (
	// CodeInvalidSequence 序列不是 1..n 的排列。
	CodeInvalidSequence = 400019
	// CodeSequenceTooLong 序列长度超过服务上限。
	CodeSequenceTooLong = 400020
	// CodeInvalidStrategy 未知的计数策略。
	CodeInvalidStrategy = 400021
)

var (
	// ErrInvalidSequence 序列包含越界值、重复值或非整数元素。
	// 仅用于 errors.Is 匹配，实际返回的错误由 InvalidSequence 逐次构造。
	ErrInvalidSequence = New(ErrInvalidArg, CodeInvalidSequence, SequenceMessage, "", nil)
	// ErrSequenceTooLong 序列过长。
	ErrSequenceTooLong = New(ErrInvalidArg, CodeSequenceTooLong, "sequence too long", "sequence length exceeds the configured limit", nil)
	// ErrInvalidStrategy 计数策略无效。
	ErrInvalidStrategy = New(ErrInvalidArg, CodeInvalidStrategy, "invalid strategy", "supported strategies: tree, fenwick", nil)
)

// InvalidSequence 为一次校验失败构造独立的错误实例，记录触发位置与取值。
func InvalidSequence(index int, value any, detail string) *Error {
	return New(ErrInvalidArg, CodeInvalidSequence, SequenceMessage, detail, nil).
		WithContext("index", index).
		WithContext("value", value)
}

// SequenceTooLong 构造长度超限错误。
func SequenceTooLong(length, limit int) *Error {
	return New(ErrInvalidArg, CodeSequenceTooLong, "sequence too long", "", nil).
		WithDetail("length %d exceeds limit %d", length, limit).
		WithContext("length", length)
}

// CodeBatchTooLarge 批量请求中的序列数量超过上限。
const CodeBatchTooLarge = 400022

// BatchTooLarge 构造批量超限错误。
func BatchTooLarge(size, limit int) *Error {
	return New(ErrInvalidArg, CodeBatchTooLarge, "batch too large", "", nil).
		WithDetail("batch of %d sequences exceeds limit %d", size, limit)
}
