package object

// Pool owns the live entities of one kind.
//
// Entities added with Add are visible immediately. Entities queued with Spawn
// join on the next Flush, so objects created while the pool is being iterated
// (explosion fragments during a collision pass) take part from the next tick.
type Pool struct {
	items   []*Entity
	toSpawn []*Entity
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Add inserts an entity right away.
func (p *Pool) Add(e *Entity) {
	p.items = append(p.items, e)
}

// Spawn queues an entity to be added by the next Flush.
func (p *Pool) Spawn(e *Entity) {
	p.toSpawn = append(p.toSpawn, e)
}

// Flush adds all queued entities and clears the queue.
func (p *Pool) Flush() {
	p.items = append(p.items, p.toSpawn...)
	clear(p.toSpawn)
	p.toSpawn = p.toSpawn[:0]
}

// Compact drops inactive entities, keeping the order of the rest.
// It returns how many were removed.
func (p *Pool) Compact() int {
	kept := p.items[:0] // reuse backing array
	for _, e := range p.items {
		if e.Active {
			kept = append(kept, e)
		}
	}
	removed := len(p.items) - len(kept)
	clear(p.items[len(kept):]) // release references held past the new length
	p.items = kept
	return removed
}

// Items returns the live entities. The slice is only valid until the pool changes.
func (p *Pool) Items() []*Entity {
	return p.items
}

// Len returns the number of entities in the pool, queued ones excluded.
func (p *Pool) Len() int {
	return len(p.items)
}

// Pending returns the number of queued entities.
func (p *Pool) Pending() int {
	return len(p.toSpawn)
}

// Clear removes everything, queued entities included.
func (p *Pool) Clear() {
	clear(p.items)
	p.items = p.items[:0]
	clear(p.toSpawn)
	p.toSpawn = p.toSpawn[:0]
}
