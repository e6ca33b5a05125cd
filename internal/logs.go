package internal

import (
	"fmt"
	"time"

	"github.com/gokit/streamkit"
)

// TLog implements the streamkit.Logs interface, printing
// out level and message contents with a timestamp.
type TLog struct{}

// Emit prints giving log entry with its level, it implements
// streamkit.Logs Emit method.
func (TLog) Emit(l streamkit.Level, e streamkit.LogMessage) {
	fmt.Printf("[%s : %s] %s\n", time.Now().Format(time.RFC3339), l, e.Message())
}
