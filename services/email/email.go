// Package emailsvc provides the core.EmailService implementations.
package emailsvc

import "github.com/trezcool/lifetrack/core"

// New picks sendgrid when an API key is configured, the console otherwise.
func New(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.SendgridApiKey != "" && !conf.Debug {
		return NewSendgridService(conf, logger)
	}
	return NewConsoleService(conf, logger)
}
