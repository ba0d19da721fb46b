//go:build windows || plan9

package logger

import "errors"

func dialSyslog(string) (syslogSink, error) {
	return nil, errors.New("syslog is not supported on this platform")
}
