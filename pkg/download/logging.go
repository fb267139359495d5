package download

import (
	"fmt"

	"github.com/glorpus-work/fetchy/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
)

// retryLogger routes retryablehttp's leveled logging into the application logger.
type retryLogger struct{}

var _ retryablehttp.LeveledLogger = retryLogger{}

func (retryLogger) Error(msg string, kv ...interface{}) { logger.Error(msg, fields(kv)) }
func (retryLogger) Warn(msg string, kv ...interface{})  { logger.Warn(msg, fields(kv)) }
func (retryLogger) Info(msg string, kv ...interface{})  { logger.Debug(msg, fields(kv)) }
func (retryLogger) Debug(msg string, kv ...interface{}) { logger.Debug(msg, fields(kv)) }

func fields(kv []interface{}) logger.Fields {
	f := make(logger.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}
