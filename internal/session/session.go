// Package session хранит состояние формы подбора: выбранный лист, крепление,
// скидки и введённые в ячейки количества.
package session

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"radiatool/internal/constants"
	"radiatool/internal/service/bom"
	"radiatool/internal/service/quantity"
	"sort"
	"strconv"
	"sync"
	"time"
)

var ErrNotFound = errors.New("session not found")

// CellKey ячейка матрицы определяется листом и артикулом.
type CellKey struct {
	Connection   constants.Connection `json:"connection"`
	RadiatorType string               `json:"type"`
	Article      string               `json:"article"`
}

type Session struct {
	ID           string               `json:"id"`
	Connection   constants.Connection `json:"connection"`
	RadiatorType string               `json:"type"`
	Options      bom.Options          `json:"options"`
	Cells        map[CellKey]string   `json:"-"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// OptionsUpdate изменение настроек формы, nil поля не трогаются.
type OptionsUpdate struct {
	Connection       *constants.Connection   `json:"connection"`
	RadiatorType     *string                 `json:"type"`
	Mounting         *constants.MountingMode `json:"mounting"`
	RadiatorDiscount *float64                `json:"radiator_discount"`
	BracketDiscount  *float64                `json:"bracket_discount"`
}

// CellResult итог правки ячейки. При отказе Value содержит прежнее значение.
type CellResult struct {
	Accepted bool   `json:"accepted"`
	Value    string `json:"value"`
	Quantity int    `json:"quantity"`
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	now      func() time.Time
}

func NewStore(idle time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		idle:     idle,
		now:      time.Now,
	}
}

func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()

	now := s.now()
	sess := &Session{
		ID:           uuid.New().String(),
		Connection:   constants.ConnectionRightValve,
		RadiatorType: constants.RadiatorTypes(constants.ConnectionRightValve)[0],
		Options:      bom.Options{Mounting: constants.MountingWall},
		Cells:        make(map[CellKey]string),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.sessions[sess.ID] = sess

	return sess.clone()
}

// Get копия сессии, её можно читать без блокировки.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return Session{}, err
	}
	return sess.clone(), nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// UpdateOptions при смене подключения тип, недоступный для него, сбрасывается на первый доступный.
func (s *Store) UpdateOptions(id string, upd OptionsUpdate) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return Session{}, err
	}

	if upd.Connection != nil && len(constants.RadiatorTypes(*upd.Connection)) > 0 {
		sess.Connection = *upd.Connection
	}
	if upd.RadiatorType != nil && constants.TypeAllowed(sess.Connection, *upd.RadiatorType) {
		sess.RadiatorType = *upd.RadiatorType
	}
	if !constants.TypeAllowed(sess.Connection, sess.RadiatorType) {
		sess.RadiatorType = constants.RadiatorTypes(sess.Connection)[0]
	}

	if upd.Mounting != nil && upd.Mounting.Label() != "" {
		sess.Options.Mounting = *upd.Mounting
	}
	if upd.RadiatorDiscount != nil {
		sess.Options.RadiatorDiscount = bom.ClampPercent(*upd.RadiatorDiscount)
	}
	if upd.BracketDiscount != nil {
		sess.Options.BracketDiscount = bom.ClampPercent(*upd.BracketDiscount)
	}

	return sess.clone(), nil
}

// SetCell правка ячейки. Ввод не из цифр и "+" отклоняется, прежнее значение остаётся.
// Пустой ввод очищает ячейку.
func (s *Store) SetCell(id string, key CellKey, raw string) (CellResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return CellResult{}, err
	}

	if !quantity.ValidInput(raw) {
		prev := sess.Cells[key]
		return CellResult{Accepted: false, Value: prev, Quantity: quantity.Parse(prev)}, nil
	}

	if raw == "" {
		delete(sess.Cells, key)
		return CellResult{Accepted: true}, nil
	}

	sess.Cells[key] = raw
	return CellResult{Accepted: true, Value: raw, Quantity: quantity.Parse(raw)}, nil
}

// AddQuantity прибавляет количество к тому, что уже введено в ячейке.
// Если сумма больше quantity.Max, ячейка не меняется.
func (s *Store) AddQuantity(id string, key CellKey, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return 0, err
	}

	current := quantity.Parse(sess.Cells[key])
	total, ok := quantity.Add(current, qty)
	if !ok {
		return current, nil
	}
	if total <= 0 {
		delete(sess.Cells, key)
		return 0, nil
	}

	sess.Cells[key] = strconv.Itoa(total)
	return total, nil
}

func (s *Store) ClearCells(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touchLocked(id)
	if err != nil {
		return err
	}

	sess.Cells = make(map[CellKey]string)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// RunCleanup удаляет простаивающие сессии, пока не отменён ctx.
func (s *Store) RunCleanup(ctx context.Context, interval time.Duration, onEvict func(active int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.evictLocked()
			active := len(s.sessions)
			s.mu.Unlock()

			if onEvict != nil {
				onEvict(active)
			}
		}
	}
}

func (s *Store) touchLocked(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}

	sess.UpdatedAt = now
	return sess, nil
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.idle > 0 && now.Sub(sess.UpdatedAt) > s.idle
}

func (s *Store) evictLocked() {
	now := s.now()
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *Session) clone() Session {
	c := *s
	c.Cells = make(map[CellKey]string, len(s.Cells))
	for k, v := range s.Cells {
		c.Cells[k] = v
	}
	return c
}

// CellEntries непустые ячейки в детерминированном порядке: по листам, затем по артикулу.
func (s Session) CellEntries() []bom.CellEntry {
	entries := make([]bom.CellEntry, 0, len(s.Cells))
	for k, v := range s.Cells {
		entries = append(entries, bom.CellEntry{
			Connection:   k.Connection,
			RadiatorType: k.RadiatorType,
			Article:      k.Article,
			Value:        v,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Connection != b.Connection {
			return connOrder(a.Connection) < connOrder(b.Connection)
		}
		if a.RadiatorType != b.RadiatorType {
			return a.RadiatorType < b.RadiatorType
		}
		return a.Article < b.Article
	})

	return entries
}

// Cell введённое значение ячейки или пустая строка.
func (s Session) Cell(key CellKey) string {
	return s.Cells[key]
}

func connOrder(c constants.Connection) int {
	for i, v := range constants.Connections {
		if v == c {
			return i
		}
	}
	return len(constants.Connections)
}

// CellView ячейка в ответе API.
type CellView struct {
	CellKey
	Value    string `json:"value"`
	Quantity int    `json:"quantity"`
}

// View сессия в ответе API: ячейки списком в порядке CellEntries.
type View struct {
	ID           string               `json:"id"`
	Connection   constants.Connection `json:"connection"`
	RadiatorType string               `json:"type"`
	Options      bom.Options          `json:"options"`
	Cells        []CellView           `json:"cells"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (s Session) View() View {
	entries := s.CellEntries()

	cells := make([]CellView, 0, len(entries))
	for _, e := range entries {
		cells = append(cells, CellView{
			CellKey:  CellKey{Connection: e.Connection, RadiatorType: e.RadiatorType, Article: e.Article},
			Value:    e.Value,
			Quantity: quantity.Parse(e.Value),
		})
	}

	return View{
		ID:           s.ID,
		Connection:   s.Connection,
		RadiatorType: s.RadiatorType,
		Options:      s.Options,
		Cells:        cells,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
