package services

import (
	"log"
	"sync"

	"github.com/shopspring/decimal"
)

// SessionDefaults seeds every new quote in a session.
type SessionDefaults struct {
	Company  CompanyInfo
	LogoPath string
}

// Session owns the single active quote and serializes every change to it.
// Renders take a clone under the lock and draw outside it.
type Session struct {
	mu       sync.Mutex
	quote    *Quote
	pricing  PricingEngine
	defaults SessionDefaults
}

// NewSession returns a session holding an empty quote priced with p.
func NewSession(p PricingEngine, defaults SessionDefaults) *Session {
	s := &Session{pricing: p, defaults: defaults}
	s.quote = s.newQuote()
	return s
}

func (s *Session) newQuote() *Quote {
	q := NewQuote(s.pricing)
	q.Company = s.defaults.Company
	q.LogoPath = s.defaults.LogoPath
	return q
}

func (s *Session) Pricing() PricingEngine { return s.pricing }

// Snapshot returns a deep copy of the current quote.
func (s *Session) Snapshot() *Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote.Clone()
}

// AddItem validates and appends a product, returning the new total.
func (s *Session) AddItem(in ItemInput) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote.AddItem(in)
}

// RemoveItem removes the product at index. A negative index means nothing is
// selected. Nothing is removed until confirmed is true.
func (s *Session) RemoveItem(index int, confirmed bool) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 {
		return s.quote.Total(), ErrNoSelection
	}
	if index >= s.quote.Len() {
		return s.quote.Total(), &IndexError{Index: index, Len: s.quote.Len()}
	}
	if !confirmed {
		return s.quote.Total(), ErrConfirmationRequired
	}
	if err := s.quote.RemoveItem(index); err != nil {
		return s.quote.Total(), err
	}
	return s.quote.Total(), nil
}

func (s *Session) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote.Total()
}

// SetCompany replaces the header text.
func (s *Session) SetCompany(c CompanyInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote.Company = c
}

// SetLogo stores path even when the image cannot be read. In that case the
// returned error is a *ResourceWarning and exports simply omit the logo.
func (s *Session) SetLogo(path string) error {
	s.mu.Lock()
	s.quote.LogoPath = path
	s.mu.Unlock()

	if _, err := LoadLogo(path); err != nil {
		log.Printf("session: SetLogo: %v", err)
		return err
	}
	return nil
}

// Reset discards the current quote and starts a new one from the defaults.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = s.newQuote()
}

// Replace makes a copy of q the active quote.
func (s *Session) Replace(q *Quote) {
	c := q.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = c
}

// LoadSnapshot decodes data and swaps it in. On error the current quote is
// left untouched.
func (s *Session) LoadSnapshot(data []byte) error {
	q, err := DecodeSnapshot(data, s.pricing)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = q
	return nil
}

// LoadFile reads a snapshot file into the session.
func (s *Session) LoadFile(path string) error {
	q, err := LoadSnapshotFile(path, s.pricing)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quote = q
	return nil
}

// SaveFile writes the current quote to path.
func (s *Session) SaveFile(path string) error {
	return SaveSnapshotFile(path, s.Snapshot())
}

// Encode returns the current quote in snapshot format.
func (s *Session) Encode() ([]byte, error) {
	return EncodeSnapshot(s.Snapshot())
}

// Export lays out the current quote for rendering. An empty quote is refused.
func (s *Session) Export(opts ExportOptions) (ExportData, error) {
	q := s.Snapshot()
	if q.Len() == 0 {
		return ExportData{}, ErrEmptyQuote
	}
	return PrepareExport(q, opts), nil
}
