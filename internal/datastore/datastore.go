package datastore

import (
	"container/list"
	"slices"
	"sync"
)

type ElementWithID[T comparable] struct {
	id   string
	data T
}

// DataStore is an id-keyed collection that keeps insertion order. Updates
// happen in place and never move an element. Writes that leave the contents
// as they were do not count as changes.
type DataStore[T comparable] struct {
	registry map[string]*list.Element
	queue    *list.List
	key      func(T) string
	mut      *sync.RWMutex
	dirty    bool
}

func New[T comparable](key func(T) string) *DataStore[T] {
	return &DataStore[T]{
		registry: make(map[string]*list.Element),
		queue:    list.New(),
		key:      key,
		mut:      &sync.RWMutex{},
	}
}

func (d *DataStore[T]) Get(id string) (T, bool) {
	d.mut.RLock()
	defer d.mut.RUnlock()
	element, ok := d.registry[id]
	if !ok {
		return *new(T), false
	}

	return element.Value.(*ElementWithID[T]).data, true
}

// Replace drops the current contents and loads items in the given order.
// A repeated id keeps its first position and takes the last value.
func (d *DataStore[T]) Replace(items []T) {
	d.mut.Lock()
	defer d.mut.Unlock()

	before := d.asSlice()
	d.registry = make(map[string]*list.Element, len(items))
	d.queue.Init()
	for _, item := range items {
		d.upsert(item)
	}
	if !slices.Equal(before, d.asSlice()) {
		d.dirty = true
	}
}

// Upsert appends unknown ids to the back and overwrites known ones in place.
func (d *DataStore[T]) Upsert(item T) {
	d.mut.Lock()
	defer d.mut.Unlock()

	if d.upsert(item) {
		d.dirty = true
	}
}

func (d *DataStore[T]) upsert(item T) bool {
	id := d.key(item)
	if element, ok := d.registry[id]; ok {
		e := element.Value.(*ElementWithID[T])
		if e.data == item {
			return false
		}
		e.data = item
		return true
	}

	d.registry[id] = d.queue.PushBack(&ElementWithID[T]{
		id:   id,
		data: item,
	})
	return true
}

// Update applies fn to the stored element. It reports false when id is unknown.
func (d *DataStore[T]) Update(id string, fn func(*T)) bool {
	d.mut.Lock()
	defer d.mut.Unlock()

	element, ok := d.registry[id]
	if !ok {
		return false
	}

	e := element.Value.(*ElementWithID[T])
	before := e.data
	fn(&e.data)
	if e.data != before {
		d.dirty = true
	}
	return true
}

func (d *DataStore[T]) Delete(id string) bool {
	d.mut.Lock()
	defer d.mut.Unlock()

	element, ok := d.registry[id]
	if !ok {
		return false
	}

	delete(d.registry, id)
	d.queue.Remove(element)
	d.dirty = true
	return true
}

func (d *DataStore[T]) Len() int {
	d.mut.RLock()
	defer d.mut.RUnlock()
	return d.queue.Len()
}

func (d *DataStore[T]) AsSlice() []T {
	d.mut.RLock()
	defer d.mut.RUnlock()
	return d.asSlice()
}

func (d *DataStore[T]) asSlice() []T {
	result := make([]T, 0, d.queue.Len())
	for element := d.queue.Front(); element != nil; element = element.Next() {
		result = append(result, element.Value.(*ElementWithID[T]).data)
	}
	return result
}

// HasChanges reports whether the store was written since the last call.
func (d *DataStore[T]) HasChanges() bool {
	d.mut.Lock()
	defer d.mut.Unlock()

	dirty := d.dirty
	d.dirty = false
	return dirty
}
