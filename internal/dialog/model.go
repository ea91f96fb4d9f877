package dialog

import "sync"

type State string

const (
	StateIdle   State = "idle"
	StateCreate State = "create"
	StateEdit   State = "edit"
)

// Dialog: диалог создания/редактирования одной записи.
// Хранит одну изменяемую форму; editing задан только в StateEdit.
// Удаление в ожидании подтверждения хранится отдельно и форму не трогает.
type Dialog[T any] struct {
	mu       sync.Mutex
	state    State
	form     T
	editing  *T
	pending  string
	lastErr  error
	defaults func() T
}

func New[T any](defaults func() T) *Dialog[T] {
	return &Dialog[T]{state: StateIdle, form: defaults(), defaults: defaults}
}

func (d *Dialog[T]) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dialog[T]) OpenCreate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateCreate
	d.form = d.defaults()
	d.editing = nil
	d.lastErr = nil
}

func (d *Dialog[T]) OpenEdit(rec T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateEdit
	d.form = rec
	d.editing = &rec
	d.lastErr = nil
}

func (d *Dialog[T]) Form() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

func (d *Dialog[T]) SetForm(f T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form = f
}

// Update меняет форму на месте (добавить позицию, поменять поле).
func (d *Dialog[T]) Update(fn func(f *T)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.form)
}

// Editing: исходная запись, если диалог открыт на редактирование.
func (d *Dialog[T]) Editing() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.editing == nil {
		var zero T
		return zero, false
	}
	return *d.editing, true
}

func (d *Dialog[T]) IsOpen() bool {
	s := d.State()
	return s == StateCreate || s == StateEdit
}

// Fail оставляет диалог открытым и запоминает ошибку отправки.
func (d *Dialog[T]) Fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastErr = err
}

func (d *Dialog[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Close закрывает диалог и сбрасывает форму к значениям по умолчанию.
func (d *Dialog[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *Dialog[T]) AskDelete(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = id
}

// PendingDelete: id, ожидающий подтверждения.
func (d *Dialog[T]) PendingDelete() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.pending != ""
}

// TakeDelete забирает ожидающий id и сбрасывает его одним шагом.
func (d *Dialog[T]) TakeDelete() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.pending
	d.pending = ""
	return id, id != ""
}

// DropDelete сбрасывает ожидание, только если ждёт именно id.
func (d *Dialog[T]) DropDelete(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == id {
		d.pending = ""
	}
}

func (d *Dialog[T]) CancelDelete() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = ""
}

func (d *Dialog[T]) reset() {
	d.state = StateIdle
	d.form = d.defaults()
	d.editing = nil
	d.lastErr = nil
}
