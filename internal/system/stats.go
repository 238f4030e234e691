package system

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// RunStats formats a run report with elapsed time and process resource
// usage, printed after an analysis when -stats is set.
func RunStats(elapsed time.Duration, analyses int) string {
	var b strings.Builder

	b.WriteString("--- [RUN REPORT] ---\n")
	fmt.Fprintf(&b, "Analyses: %d\n", analyses)
	fmt.Fprintf(&b, "Total Time: %.2fs\n", elapsed.Seconds())
	if analyses > 0 {
		fmt.Fprintf(&b, "Per Analysis: %.2fs\n", elapsed.Seconds()/float64(analyses))
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil {
			fmt.Fprintf(&b, "Process RSS: %.1f MB\n", float64(mi.RSS)/1024/1024)
		}
		if cpu, err := proc.CPUPercent(); err == nil {
			fmt.Fprintf(&b, "Process CPU: %.1f%%\n", cpu)
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(&b, "Host Memory: %.1f%% used\n", vm.UsedPercent)
	}

	b.WriteString("--------------------")
	return b.String()
}
