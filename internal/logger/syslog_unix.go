//go:build !windows && !plan9

package logger

import "log/syslog"

// dialSyslog connects to the local syslog daemon on the authpriv facility,
// where login programs log.
func dialSyslog(tag string) (syslogSink, error) {
	return syslog.New(syslog.LOG_AUTHPRIV|syslog.LOG_INFO, tag)
}
