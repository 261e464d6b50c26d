package quote

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mwd-interiors/quotedesk/internal/domain/catalog"
)

var (
	ErrDraftNotFound = errors.New("draft not found")
	ErrRoomNotFound  = errors.New("room not found")
	ErrItemNotFound  = errors.New("item not found")
)

// Draft is a quotation being assembled. Room and item ids are assigned
// sequentially and never reused within the draft.
type Draft struct {
	ID        int64     `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	Quotation Quotation `json:"quotation"`

	nextRoomID int64
	nextItemID int64
}

// Defaults seeds new drafts and new rooms.
type Defaults struct {
	Company            Company
	Terms              string
	InstallationCharge decimal.Decimal
	TaxPercent         decimal.Decimal
}

func NewDraft(d Defaults) *Draft {
	return &Draft{
		Quotation: Quotation{
			Status:             StatusPending,
			Company:            d.Company,
			Terms:              d.Terms,
			InstallationCharge: d.InstallationCharge,
			Rooms:              []Room{},
		},
		nextRoomID: 1,
		nextItemID: 1,
	}
}

// DraftFrom reopens a saved quotation for editing. The saved record keeps
// its id and number so that saving the draft overwrites it.
func DraftFrom(q Quotation) *Draft {
	d := &Draft{Quotation: q.Clone(), nextRoomID: 1, nextItemID: 1}
	for _, r := range d.Quotation.Rooms {
		d.nextRoomID = max(d.nextRoomID, r.ID+1)
		for _, it := range r.Items {
			d.nextItemID = max(d.nextItemID, it.ID+1)
		}
	}
	return d
}

func (d *Draft) Clone() Draft {
	out := *d
	out.Quotation = d.Quotation.Clone()
	return out
}

func (d *Draft) SelectCustomer(c *catalog.Customer) {
	if c == nil {
		d.Quotation.Customer = nil
		return
	}
	cp := *c
	d.Quotation.Customer = &cp
}

func (d *Draft) SelectSalesperson(s *catalog.Salesperson) {
	if s == nil {
		d.Quotation.Salesperson = nil
		return
	}
	cp := *s
	d.Quotation.Salesperson = &cp
}

// AddRoom appends an empty room named "Room N".
func (d *Draft) AddRoom(taxPercent decimal.Decimal) Room {
	r := Room{
		ID:              d.nextRoomID,
		Name:            fmt.Sprintf("Room %d", d.nextRoomID),
		DiscountPercent: decimal.Zero,
		TaxPercent:      taxPercent,
		Items:           []LineItem{},
	}
	d.nextRoomID++
	d.Quotation.Rooms = append(d.Quotation.Rooms, r)
	return r
}

func (d *Draft) Room(roomID int64) (*Room, error) {
	for i := range d.Quotation.Rooms {
		if d.Quotation.Rooms[i].ID == roomID {
			return &d.Quotation.Rooms[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrRoomNotFound, roomID)
}

func (d *Draft) RemoveRoom(roomID int64) error {
	rooms := d.Quotation.Rooms
	for i := range rooms {
		if rooms[i].ID == roomID {
			d.Quotation.Rooms = append(rooms[:i:i], rooms[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrRoomNotFound, roomID)
}

// AddProduct adds one unit of a catalog product priced at its MRP.
func (d *Draft) AddProduct(roomID int64, p catalog.Product) (LineItem, error) {
	pid := p.ID
	return d.AddItem(roomID, LineItem{
		ProductID:      &pid,
		Name:           p.Name,
		Brand:          p.Brand,
		Specifications: p.Specifications,
		MRP:            p.MRP,
		Quantity:       1,
		UnitPrice:      p.MRP,
		PhotoURL:       p.PhotoURL,
	})
}

// AddItem appends it to the room, assigning a fresh item id.
func (d *Draft) AddItem(roomID int64, it LineItem) (LineItem, error) {
	r, err := d.Room(roomID)
	if err != nil {
		return LineItem{}, err
	}
	it.ID = d.nextItemID
	d.nextItemID++
	r.Items = append(r.Items, it)
	return it, nil
}

func (d *Draft) Item(roomID, itemID int64) (*LineItem, error) {
	r, err := d.Room(roomID)
	if err != nil {
		return nil, err
	}
	for i := range r.Items {
		if r.Items[i].ID == itemID {
			return &r.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrItemNotFound, itemID)
}

func (d *Draft) RemoveItem(roomID, itemID int64) error {
	r, err := d.Room(roomID)
	if err != nil {
		return err
	}
	for i := range r.Items {
		if r.Items[i].ID == itemID {
			r.Items = append(r.Items[:i:i], r.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrItemNotFound, itemID)
}
