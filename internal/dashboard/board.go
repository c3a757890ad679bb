package dashboard

import (
	"github.com/ayatsuji/taskboard/internal/models"
)

// Card is the minimal task projection the dashboard renders.
type Card struct {
	ID    string
	Title string
}

// Board is the client task cache: visible tasks partitioned into the three
// status buckets. It is a disposable projection, rebuilt wholesale from a
// list fetch and mutated incrementally on moves. The Board itself is not
// safe for concurrent use; the Controller serializes access.
type Board struct {
	buckets map[models.TaskStatus][]Card
}

// NewBoard returns a board with all three buckets empty.
func NewBoard() *Board {
	b := &Board{}
	b.reset()
	return b
}

func (b *Board) reset() {
	b.buckets = make(map[models.TaskStatus][]Card, 3)
	for _, status := range models.Statuses() {
		b.buckets[status] = []Card{}
	}
}

// Rebuild replaces the entire cache with a freshly fetched task set.
// Records carrying an unrecognized status label are skipped.
func (b *Board) Rebuild(tasks []models.Task) {
	b.reset()
	for _, task := range tasks {
		if task.ID == "" || task.Title == "" || !task.Status.Valid() {
			continue
		}
		b.buckets[task.Status] = append(b.buckets[task.Status], Card{
			ID:    task.ID,
			Title: task.Title,
		})
	}
}

// Find locates a card and the bucket it currently occupies.
func (b *Board) Find(id string) (Card, models.TaskStatus, bool) {
	for _, status := range models.Statuses() {
		for _, card := range b.buckets[status] {
			if card.ID == id {
				return card, status, true
			}
		}
	}
	return Card{}, "", false
}

// Move splices a card out of its source bucket and appends it to the
// destination bucket, returning the card's former position in from so a
// failed move can be undone card-by-card.
func (b *Board) Move(id string, from, to models.TaskStatus) (int, bool) {
	source := b.buckets[from]
	for i, card := range source {
		if card.ID == id {
			b.buckets[from] = append(source[:i:i], source[i+1:]...)
			b.buckets[to] = append(b.buckets[to], card)
			return i, true
		}
	}
	return 0, false
}

// Take splices a card out of whichever bucket currently holds it.
func (b *Board) Take(id string) (Card, models.TaskStatus, bool) {
	for _, status := range models.Statuses() {
		bucket := b.buckets[status]
		for i, card := range bucket {
			if card.ID == id {
				b.buckets[status] = append(bucket[:i:i], bucket[i+1:]...)
				return card, status, true
			}
		}
	}
	return Card{}, "", false
}

// Insert places a card into a bucket at position at. Out-of-range positions
// clamp to the bucket ends.
func (b *Board) Insert(card Card, status models.TaskStatus, at int) {
	bucket := b.buckets[status]
	if at < 0 {
		at = 0
	}
	if at > len(bucket) {
		at = len(bucket)
	}
	bucket = append(bucket, Card{})
	copy(bucket[at+1:], bucket[at:])
	bucket[at] = card
	b.buckets[status] = bucket
}

// Bucket returns a copy of one bucket's cards in display order.
func (b *Board) Bucket(status models.TaskStatus) []Card {
	cards := make([]Card, len(b.buckets[status]))
	copy(cards, b.buckets[status])
	return cards
}
