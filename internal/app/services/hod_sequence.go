package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/attendtrack/attendtrack/internal/app/repositories"
	"github.com/attendtrack/attendtrack/internal/pkg/apperrors"
)

// departmentLocks serializes head-identifier assignment per department so two
// concurrent creations in the same department cannot read the same sequence
// tail. Creations in different departments proceed independently.
type departmentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDepartmentLocks() *departmentLocks {
	return &departmentLocks{locks: make(map[string]*sync.Mutex)}
}

func (d *departmentLocks) lock(department string) func() {
	d.mu.Lock()
	m, ok := d.locks[department]
	if !ok {
		m = &sync.Mutex{}
		d.locks[department] = m
	}
	d.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// departmentAbbreviation derives the three-letter department prefix used in
// generated head identifiers: the first three characters uppercased with
// non-letters stripped, or GEN when nothing usable remains.
func departmentAbbreviation(department string) string {
	runes := []rune(strings.TrimSpace(department))
	if len(runes) > 3 {
		runes = runes[:3]
	}

	var b strings.Builder
	for _, r := range runes {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}

	if b.Len() == 0 {
		return "GEN"
	}
	return b.String()
}

// nextSequence parses the trailing numeric part of the most recent head
// identifier in the department and returns it incremented, or 1 when the
// department has no heads or the identifier does not end in digits.
func nextSequence(lastHodID string) int {
	idx := strings.LastIndex(lastHodID, "_")
	if idx < 0 || idx == len(lastHodID)-1 {
		return 1
	}

	var n int
	if _, err := fmt.Sscanf(lastHodID[idx+1:], "%d", &n); err != nil || n < 0 {
		return 1
	}
	return n + 1
}

// NextHeadID generates the next head identifier for a department, of the form
// HOD_<ABBR>_<seq>. The caller must hold the department lock for the whole
// read-generate-insert window.
func NextHeadID(ctx context.Context, userRepo repositories.IUserRepository, department string) (string, error) {
	abbr := departmentAbbreviation(department)

	seq := 1
	last, err := userRepo.LastHeadInDepartment(ctx, department)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return "", fmt.Errorf("error reading department sequence: %w", err)
		}
	} else if last.HodID != nil {
		seq = nextSequence(*last.HodID)
	}

	return fmt.Sprintf("HOD_%s_%03d", abbr, seq), nil
}
