package batch

// Stage — этап жизненного цикла, на котором выполнение перешло в FAILED.
type Stage string

const (
	StageConnect   Stage = "connect"
	StageSubscribe Stage = "subscribe"
	StageCollect   Stage = "collect"
)

// Error — единственная ошибка, которую получает вызывающий проваленного выполнения.
// Ошибка очистки (disconnect) сюда никогда не попадает.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return "kafka error: " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
