package sftp

// OutcomeKind 一次传输的终态类别
type OutcomeKind string

const (
	OutcomeSuccess          OutcomeKind = "SUCCESS"
	OutcomeCancelled        OutcomeKind = "CANCELLED"
	OutcomeTimedOut         OutcomeKind = "TIMED_OUT"
	OutcomeConnectionFailed OutcomeKind = "CONNECTION_FAILED"
	OutcomeIoFailed         OutcomeKind = "IO_FAILED"
	OutcomeUnhandled        OutcomeKind = "UNHANDLED"
)

// Outcome 传输结果。每次传输恰好产生一个,不存在部分结果
type Outcome struct {
	Kind   OutcomeKind
	Detail string
}

// OK 是否成功结束
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Describe 渲染成一句人类可读的描述,仅在展示边界使用
func (o Outcome) Describe() string {
	if o.Detail != "" {
		return o.Detail
	}
	switch o.Kind {
	case OutcomeSuccess:
		return "transfer completed"
	case OutcomeCancelled:
		return "transfer cancelled by user"
	case OutcomeTimedOut:
		return "transfer timed out"
	case OutcomeConnectionFailed:
		return "failed to connect for unknown reasons"
	case OutcomeIoFailed:
		return "transfer failed on read/write"
	default:
		return "unhandled transfer error"
	}
}

func (o Outcome) String() string {
	return string(o.Kind) + ": " + o.Describe()
}
