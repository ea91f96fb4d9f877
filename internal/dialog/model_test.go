package dialog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	ID    string
	Name  string
	Items []int
}

func defaults() rec { return rec{Name: "new", Items: []int{}} }

func TestCreateAndClose(t *testing.T) {
	d := New(defaults)
	assert.Equal(t, StateIdle, d.State())
	assert.False(t, d.IsOpen())

	d.OpenCreate()
	d.Update(func(f *rec) {
		f.Name = "Main"
		f.Items = append(f.Items, 1)
	})
	assert.True(t, d.IsOpen())
	_, editing := d.Editing()
	assert.False(t, editing)
	assert.Equal(t, rec{Name: "Main", Items: []int{1}}, d.Form())

	d.Close()
	assert.Equal(t, StateIdle, d.State())
	assert.Equal(t, defaults(), d.Form())
}

func TestEditKeepsOriginal(t *testing.T) {
	d := New(defaults)
	d.OpenEdit(rec{ID: "W1", Name: "Old"})
	d.SetForm(rec{ID: "W1", Name: "New"})

	orig, ok := d.Editing()
	assert.True(t, ok)
	assert.Equal(t, "Old", orig.Name)
	assert.Equal(t, "New", d.Form().Name)
	assert.Equal(t, StateEdit, d.State())
}

func TestFailKeepsDialogOpen(t *testing.T) {
	d := New(defaults)
	d.OpenCreate()
	d.Fail(errors.New("500"))

	assert.True(t, d.IsOpen())
	assert.EqualError(t, d.Err(), "500")

	d.OpenCreate()
	assert.NoError(t, d.Err())
}

func TestConfirmDelete(t *testing.T) {
	d := New(defaults)
	_, ok := d.PendingDelete()
	assert.False(t, ok)

	d.AskDelete("P001")
	id, ok := d.PendingDelete()
	assert.True(t, ok)
	assert.Equal(t, "P001", id)

	d.CancelDelete()
	_, ok = d.PendingDelete()
	assert.False(t, ok)
	assert.Equal(t, StateIdle, d.State())
}

func TestDeleteKeepsOpenForm(t *testing.T) {
	d := New(defaults)
	d.OpenEdit(rec{ID: "W1", Name: "Old"})
	d.SetForm(rec{ID: "W1", Name: "Typed"})

	d.AskDelete("W2")
	assert.Equal(t, StateEdit, d.State())
	d.CancelDelete()

	assert.True(t, d.IsOpen())
	assert.Equal(t, "Typed", d.Form().Name)
	orig, ok := d.Editing()
	assert.True(t, ok)
	assert.Equal(t, "Old", orig.Name)
}

func TestTakeAndDropDelete(t *testing.T) {
	d := New(defaults)
	d.AskDelete("P001")
	d.DropDelete("P002")
	id, ok := d.TakeDelete()
	assert.True(t, ok)
	assert.Equal(t, "P001", id)
	_, ok = d.TakeDelete()
	assert.False(t, ok)

	d.AskDelete("P003")
	d.DropDelete("P003")
	_, ok = d.PendingDelete()
	assert.False(t, ok)
}
