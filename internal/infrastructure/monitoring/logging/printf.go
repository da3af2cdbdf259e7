package logging

import "fmt"

// PrintfLogger adapts a Logger to the printf-style interface expected by
// pkg/client.
type PrintfLogger struct {
	L Logger
}

// Printf returns a printf-style adapter around l.
func Printf(l Logger) *PrintfLogger { return &PrintfLogger{L: l} }

func (p *PrintfLogger) Debugf(format string, args ...interface{}) {
	p.L.Debug(fmt.Sprintf(format, args...))
}

func (p *PrintfLogger) Infof(format string, args ...interface{}) {
	p.L.Info(fmt.Sprintf(format, args...))
}

func (p *PrintfLogger) Errorf(format string, args ...interface{}) {
	p.L.Error(fmt.Sprintf(format, args...))
}
