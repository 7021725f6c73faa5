// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import "sync/atomic"

// Progress collects loader progress for display. Update matches
// loader.Progress and may be called from any goroutine.
type Progress struct {
	done  atomic.Int64
	total atomic.Int64
}

// Update records the latest counts.
func (p *Progress) Update(done, total int) {
	p.done.Store(int64(done))
	p.total.Store(int64(total))
}

// Snapshot returns the latest counts. A nil Progress reports zero.
func (p *Progress) Snapshot() (done, total int) {
	if p == nil {
		return 0, 0
	}
	return int(p.done.Load()), int(p.total.Load())
}
