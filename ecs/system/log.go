package system

import "log"

func logDebug(l *log.Logger, debug bool, format string, args ...any) {
	if !debug {
		return
	}
	if l == nil {
		l = log.Default()
	}
	l.Printf("debug: "+format, args...)
}

func logWarn(l *log.Logger, format string, args ...any) {
	if l == nil {
		l = log.Default()
	}
	l.Printf("warn: "+format, args...)
}
