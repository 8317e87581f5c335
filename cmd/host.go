package cmd

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine a render runs on
type HostInfo struct {
	CPUModel      string
	LogicalCores  int
	TotalMemoryGB uint64
}

// hostInfo queries the CPU and memory. Missing values are left zero and the
// core count falls back to runtime.NumCPU.
func hostInfo() HostInfo {
	info := HostInfo{LogicalCores: runtime.NumCPU()}

	if count, err := cpu.Counts(true); err == nil && count > 0 {
		info.LogicalCores = count
	} else if err != nil {
		logger.Debugf("cpu count unavailable: %v", err)
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemoryGB = vm.Total / (1024 * 1024 * 1024)
	}
	return info
}

