// Package memory provides an in-process payslip archive.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/warp/salary-engine/generic"
	"github.com/warp/salary-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

var _ payroll.PayslipStore = (*Memory)(nil)

type Memory struct {
	mu      sync.RWMutex
	byID    map[string]int
	ordered []payroll.Payslip // newest first
}

func New() *Memory {
	return &Memory{byID: make(map[string]int)}
}

// SavePayslip inserts p keeping the newest-first order. Append-only.
func (m *Memory) SavePayslip(_ context.Context, p payroll.Payslip) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[p.ID]; ok {
		return fmt.Errorf("save payslip %s: %w", p.ID, generic.ErrDuplicatePayslip)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	// Binary search for insertion point; ties keep ID order like the SQL store
	i := sort.Search(len(m.ordered), func(i int) bool {
		o := m.ordered[i]
		if o.CreatedAt.Equal(p.CreatedAt) {
			return o.ID > p.ID
		}
		return o.CreatedAt.Before(p.CreatedAt)
	})

	m.ordered = append(m.ordered, payroll.Payslip{})
	copy(m.ordered[i+1:], m.ordered[i:])
	m.ordered[i] = p
	m.reindexLocked(i)
	return nil
}

func (m *Memory) reindexLocked(from int) {
	for i := from; i < len(m.ordered); i++ {
		m.byID[m.ordered[i].ID] = i
	}
}

func (m *Memory) GetPayslip(_ context.Context, id string) (*payroll.Payslip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	p := m.ordered[i]
	return &p, nil
}

func (m *Memory) ListPayslips(_ context.Context, limit int) ([]payroll.Payslip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.ordered)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]payroll.Payslip, n)
	copy(result, m.ordered[:n])
	return result, nil
}
