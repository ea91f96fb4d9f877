package views

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Spok95/supply-console/internal/dialog"
	"github.com/Spok95/supply-console/internal/domain"
	"github.com/Spok95/supply-console/internal/notify"
	"github.com/Spok95/supply-console/internal/querycache"
)

var (
	ErrConfirmRequired = errors.New("delete requires confirmation")
	ErrNothingPending  = errors.New("no delete awaiting confirmation")
	ErrDialogClosed    = errors.New("dialog is not open")
	ErrNotFound        = errors.New("record not found")
)

// Store: чтение и мутации одного ресурса (domain Repo).
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) (*T, error)
	Update(ctx context.Context, rec T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Dep: связанный ресурс, из которого берутся имена вместо id.
type Dep struct {
	Key   querycache.Key
	Fetch querycache.Fetcher
}

func listDep[T any](key querycache.Key, s Store[T]) Dep {
	return Dep{Key: key, Fetch: func(ctx context.Context) (any, error) { return s.List(ctx) }}
}

type Config[T any] struct {
	Resource string // ключ кеша, совпадает с именем коллекции API
	Title    string // "purchase orders"
	Store    Store[T]
	Defaults func() T
	ID       func(T) string
	Match    func(rec T, id string) bool
	DeleteID func(T) string
	Carry    func(orig, form T) T
	Validate func(T) error
	Row      func(T, Lookups) string
	Deps     []Dep
	Confirm  bool // удаление в два шага
}

type Env struct {
	Cache  *querycache.Cache
	Notify notify.Notifier
	Log    *slog.Logger
}

// Management управляет одним ресурсом: список, диалог формы и удаление.
type Management[T any] struct {
	cfg    Config[T]
	key    querycache.Key
	env    Env
	dialog *dialog.Dialog[T]

	mu      sync.Mutex
	unsub   []func()
	version int
}

func NewManagement[T any](cfg Config[T], env Env) *Management[T] {
	if cfg.Match == nil {
		cfg.Match = func(rec T, id string) bool { return id != "" && cfg.ID(rec) == id }
	}
	if cfg.DeleteID == nil {
		cfg.DeleteID = cfg.ID
	}
	return &Management[T]{
		cfg:    cfg,
		key:    querycache.K(cfg.Resource),
		env:    env,
		dialog: dialog.New(cfg.Defaults),
	}
}

func (m *Management[T]) Resource() string    { return m.cfg.Resource }
func (m *Management[T]) Key() querycache.Key { return m.key }

func (m *Management[T]) Dialog() *dialog.Dialog[T] { return m.dialog }

func (m *Management[T]) list(ctx context.Context) (any, error) {
	return m.cfg.Store.List(ctx)
}

// Mount подписывается на ключ ресурса и связанных ресурсов и читает их параллельно.
func (m *Management[T]) Mount(ctx context.Context) error {
	m.mu.Lock()
	if m.unsub == nil {
		m.unsub = append(m.unsub, m.env.Cache.Subscribe(m.key, m.changed))
		for _, d := range m.cfg.Deps {
			m.unsub = append(m.unsub, m.env.Cache.Subscribe(d.Key, m.changed))
		}
	}
	m.mu.Unlock()
	return m.Refresh(ctx)
}

func (m *Management[T]) Unmount() {
	m.mu.Lock()
	unsub := m.unsub
	m.unsub = nil
	m.mu.Unlock()
	for _, u := range unsub {
		u()
	}
}

// Refresh читает ресурс и зависимости через кеш. Свежие записи не перезапрашиваются.
func (m *Management[T]) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		_, err := m.env.Cache.Read(ctx, m.key, m.list)
		return err
	})
	for _, d := range m.cfg.Deps {
		g.Go(func() error {
			_, err := m.env.Cache.Read(ctx, d.Key, d.Fetch)
			return err
		})
	}
	return g.Wait()
}

func (m *Management[T]) changed(querycache.State) {
	m.mu.Lock()
	m.version++
	m.mu.Unlock()
}

// Version растёт при каждом уведомлении кеша (перерисовка).
func (m *Management[T]) Version() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// Items: текущие закешированные записи, в том числе устаревшие.
func (m *Management[T]) Items() ([]T, bool) {
	return querycache.Data[[]T](m.env.Cache, m.key)
}

func (m *Management[T]) Render() string {
	st := m.env.Cache.State(m.key)
	if !st.HasData {
		if st.Err != nil {
			return fmt.Sprintf("Failed to load %s: %v", m.cfg.Title, st.Err)
		}
		return fmt.Sprintf("Loading %s...", m.cfg.Title)
	}

	var lines []string
	if st.Err != nil {
		lines = append(lines, fmt.Sprintf("Failed to refresh %s: %v", m.cfg.Title, st.Err))
	}
	if id, ok := m.dialog.PendingDelete(); ok {
		lines = append(lines, fmt.Sprintf("Delete %s? Confirm to proceed.", id))
	}

	items, _ := st.Data.([]T)
	if len(items) == 0 {
		lines = append(lines, fmt.Sprintf("No %s found.", m.cfg.Title))
		return strings.Join(lines, "\n")
	}
	look := Lookups{c: m.env.Cache}
	for _, it := range items {
		lines = append(lines, m.cfg.Row(it, look))
	}
	return strings.Join(lines, "\n")
}

func (m *Management[T]) OpenCreate() { m.dialog.OpenCreate() }

// OpenEdit открывает диалог на запись из кеша (при необходимости загружает список).
func (m *Management[T]) OpenEdit(ctx context.Context, id string) error {
	rec, err := m.find(ctx, id)
	if err != nil {
		return err
	}
	m.dialog.OpenEdit(rec)
	return nil
}

func (m *Management[T]) find(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := querycache.Query(ctx, m.env.Cache, m.key, m.cfg.Store.List)
	if err != nil {
		return zero, err
	}
	for _, it := range items {
		if m.cfg.Match(it, id) {
			return it, nil
		}
	}
	return zero, fmt.Errorf("%s %q: %w", m.cfg.Resource, id, ErrNotFound)
}

// Submit: ошибка валидации не доходит до сети; ошибка мутации оставляет диалог открытым.
func (m *Management[T]) Submit(ctx context.Context) error {
	if !m.dialog.IsOpen() {
		return ErrDialogClosed
	}
	orig, editing := m.dialog.Editing()
	if err := m.save(ctx, m.dialog.Form(), orig, editing); err != nil {
		m.dialog.Fail(err)
		return err
	}
	m.dialog.Close()
	return nil
}

// SubmitJSON принимает форму в JSON. Запись с известным id редактируется, иначе создаётся.
// Диалог экрана не используется: форма и исходная запись живут только в этом вызове.
func (m *Management[T]) SubmitJSON(ctx context.Context, raw []byte) error {
	form := m.cfg.Defaults()
	if err := json.Unmarshal(raw, &form); err != nil {
		return &domain.ValidationError{Field: "body", Msg: err.Error()}
	}
	var orig T
	editing := false
	if id := m.cfg.ID(form); id != "" {
		rec, err := m.find(ctx, id)
		switch {
		case err == nil:
			orig, editing = rec, true
		case !errors.Is(err, ErrNotFound):
			return err
		}
	}
	return m.save(ctx, form, orig, editing)
}

func (m *Management[T]) save(ctx context.Context, form, orig T, editing bool) error {
	if err := m.cfg.Validate(form); err != nil {
		return err
	}

	verb := "create"
	var err error
	if editing {
		verb = "update"
		if m.cfg.Carry != nil {
			form = m.cfg.Carry(orig, form)
		}
		_, err = m.cfg.Store.Update(ctx, form)
	} else {
		_, err = m.cfg.Store.Create(ctx, form)
	}
	if err != nil {
		m.toast(ctx, notify.LevelError, fmt.Sprintf("Failed to %s %s", verb, m.cfg.Title), err.Error())
		return err
	}

	m.env.Cache.Invalidate(m.key)
	m.toast(ctx, notify.LevelInfo, fmt.Sprintf("%s: %sd", m.cfg.Title, verb), "")
	return nil
}

// Delete удаляет сразу либо, для ресурсов с подтверждением, ставит удаление в ожидание.
func (m *Management[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &domain.ValidationError{Field: "id", Msg: "is required"}
	}
	if m.cfg.Confirm {
		m.dialog.AskDelete(id)
		return ErrConfirmRequired
	}
	return m.remove(ctx, id)
}

func (m *Management[T]) ConfirmDelete(ctx context.Context) error {
	id, ok := m.dialog.TakeDelete()
	if !ok {
		return ErrNothingPending
	}
	return m.remove(ctx, id)
}

func (m *Management[T]) CancelDelete() { m.dialog.CancelDelete() }

// Remove: удаление одним вызовом. С confirmed удаляется именно id,
// общее ожидание подтверждения не используется.
func (m *Management[T]) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return m.Delete(ctx, id)
	}
	if id == "" {
		return &domain.ValidationError{Field: "id", Msg: "is required"}
	}
	m.dialog.DropDelete(id)
	return m.remove(ctx, id)
}

func (m *Management[T]) remove(ctx context.Context, id string) error {
	storeID := id
	if items, ok := m.Items(); ok {
		for _, it := range items {
			if m.cfg.Match(it, id) {
				storeID = m.cfg.DeleteID(it)
				break
			}
		}
	}

	err := querycache.Optimistic(ctx, m.env.Cache, m.key,
		func(items []T) []T {
			out := make([]T, 0, len(items))
			for _, it := range items {
				if !m.cfg.Match(it, id) {
					out = append(out, it)
				}
			}
			return out
		},
		func(ctx context.Context) error { return m.cfg.Store.Delete(ctx, storeID) },
	)
	if err != nil {
		m.toast(ctx, notify.LevelError, fmt.Sprintf("Failed to delete %s", m.cfg.Title), err.Error())
		return err
	}
	m.toast(ctx, notify.LevelInfo, fmt.Sprintf("%s: deleted", m.cfg.Title), id)
	return nil
}

func (m *Management[T]) toast(ctx context.Context, level notify.Level, title, text string) {
	if m.env.Notify == nil {
		return
	}
	if err := m.env.Notify.Notify(ctx, notify.Event{Level: level, Title: title, Text: text}); err != nil {
		m.env.Log.Warn("notify failed", "title", title, "err", err)
	}
}
