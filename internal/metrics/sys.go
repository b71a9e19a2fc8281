package metrics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
)

// SysHealth represents real-time process metrics for the admin report.
type SysHealth struct {
	AllocMB     uint64
	SysMB       uint64
	NumGC       uint32
	Goroutines  int
	DataDirSize string
}

// GetSysHealth collects real-time health data.
func GetSysHealth(dataPath string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		AllocMB:     m.Alloc / 1024 / 1024,
		SysMB:       m.Sys / 1024 / 1024,
		NumGC:       m.NumGC,
		Goroutines:  runtime.NumGoroutine(),
		DataDirSize: dirSize(dataPath),
	}
}

func dirSize(path string) string {
	var size int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
