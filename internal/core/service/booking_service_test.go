package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharenest/sharenest/internal/core/domain"
	"github.com/sharenest/sharenest/internal/core/ports"
)

type stubBookingRepo struct {
	bookings map[string]*domain.Booking
	nextID   int
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.nextID++
	b.ID = fmt.Sprintf("bk_%d", r.nextID)
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) List(_ context.Context, filter ports.ListBookingsFilter) ([]*domain.Booking, int64, error) {
	out := []*domain.Booking{}
	for _, b := range r.bookings {
		if filter.GuestID != "" && b.GuestID != filter.GuestID {
			continue
		}
		if filter.HostID != "" && b.HostID != filter.HostID {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubBookingRepo) FindBlocking(_ context.Context, propertyID string, checkIn, checkOut time.Time) ([]*domain.Booking, error) {
	out := []*domain.Booking{}
	for _, b := range r.bookings {
		if b.PropertyID == propertyID && b.Status.Blocks() && b.Overlaps(checkIn, checkOut) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, status domain.BookingStatus, at time.Time) error {
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = at
	return nil
}

func newTestBookingService() (*BookingService, *stubBookingRepo, *stubPropertyRepo) {
	bookings := newStubBookingRepo()
	properties := newStubPropertyRepo()
	svc := NewBookingService(bookings, properties, zerolog.Nop())
	return svc, bookings, properties
}

func seedProperty(t *testing.T, repo *stubPropertyRepo) *domain.Property {
	t.Helper()
	p := &domain.Property{
		Title:         "Sunny loft",
		HostID:        "host_1",
		PricePerNight: 100,
		MaxGuestCount: 2,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return p
}

func futureDate(days int) time.Time {
	return time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, days)
}

func TestBookingService_Create_Success(t *testing.T) {
	svc, _, properties := newTestBookingService()
	p := seedProperty(t, properties)

	booking, err := svc.Create(context.Background(), "guest_1", ports.CreateBookingInput{
		PropertyID:   p.ID,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(14),
		GuestCount:   2,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if booking.Status != domain.BookingPending {
		t.Fatalf("status = %s, want pending", booking.Status)
	}
	if booking.HostID != "host_1" {
		t.Fatalf("host id = %q", booking.HostID)
	}
	if booking.TotalPrice != 400 {
		t.Fatalf("total price = %v, want 400 (4 nights x 100)", booking.TotalPrice)
	}
}

func TestBookingService_Create_RejectsSameDayStay(t *testing.T) {
	svc, bookings, properties := newTestBookingService()
	p := seedProperty(t, properties)

	// A few hours on one day rounds to zero nights; it must not be
	// persisted as a free booking that still blocks the dates.
	_, err := svc.Create(context.Background(), "guest_1", ports.CreateBookingInput{
		PropertyID:   p.ID,
		CheckInDate:  futureDate(10).Add(10 * time.Hour),
		CheckOutDate: futureDate(10).Add(18 * time.Hour),
		GuestCount:   1,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(bookings.bookings) != 0 {
		t.Fatalf("booking was persisted: %d stored", len(bookings.bookings))
	}
}

func TestBookingService_Create_Validation(t *testing.T) {
	svc, _, properties := newTestBookingService()
	p := seedProperty(t, properties)

	cases := []struct {
		name string
		in   ports.CreateBookingInput
	}{
		{"check-out before check-in", ports.CreateBookingInput{PropertyID: p.ID, CheckInDate: futureDate(14), CheckOutDate: futureDate(10), GuestCount: 1}},
		{"check-in in the past", ports.CreateBookingInput{PropertyID: p.ID, CheckInDate: futureDate(-3), CheckOutDate: futureDate(2), GuestCount: 1}},
		{"zero guests", ports.CreateBookingInput{PropertyID: p.ID, CheckInDate: futureDate(10), CheckOutDate: futureDate(12), GuestCount: 0}},
		{"too many guests", ports.CreateBookingInput{PropertyID: p.ID, CheckInDate: futureDate(10), CheckOutDate: futureDate(12), GuestCount: 5}},
	}

	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), "guest_1", tc.in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestBookingService_Create_OverlapRejected(t *testing.T) {
	svc, _, properties := newTestBookingService()
	p := seedProperty(t, properties)

	first := ports.CreateBookingInput{
		PropertyID:   p.ID,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(15),
		GuestCount:   1,
	}
	if _, err := svc.Create(context.Background(), "guest_1", first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	overlapping := ports.CreateBookingInput{
		PropertyID:   p.ID,
		CheckInDate:  futureDate(13),
		CheckOutDate: futureDate(17),
		GuestCount:   1,
	}
	if _, err := svc.Create(context.Background(), "guest_2", overlapping); !errors.Is(err, domain.ErrDatesUnavailable) {
		t.Fatalf("expected ErrDatesUnavailable, got %v", err)
	}

	// Back-to-back is fine: check-in on the previous check-out day.
	adjacent := ports.CreateBookingInput{
		PropertyID:   p.ID,
		CheckInDate:  futureDate(15),
		CheckOutDate: futureDate(18),
		GuestCount:   1,
	}
	if _, err := svc.Create(context.Background(), "guest_2", adjacent); err != nil {
		t.Fatalf("adjacent booking rejected: %v", err)
	}
}

func TestBookingService_Create_CancelledDoesNotBlock(t *testing.T) {
	svc, bookings, properties := newTestBookingService()
	p := seedProperty(t, properties)

	in := ports.CreateBookingInput{
		PropertyID:   p.ID,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(15),
		GuestCount:   1,
	}
	first, err := svc.Create(context.Background(), "guest_1", in)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	bookings.bookings[first.ID].Status = domain.BookingCancelled

	if _, err := svc.Create(context.Background(), "guest_2", in); err != nil {
		t.Fatalf("dates of a cancelled booking should be free: %v", err)
	}
}

func TestBookingService_Get_AccessControl(t *testing.T) {
	svc, _, properties := newTestBookingService()
	p := seedProperty(t, properties)

	booking, err := svc.Create(context.Background(), "guest_1", ports.CreateBookingInput{
		PropertyID:   p.ID,
		CheckInDate:  futureDate(10),
		CheckOutDate: futureDate(12),
		GuestCount:   1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, tc := range []struct {
		caller, role string
		wantErr      error
	}{
		{"guest_1", domain.RoleGuest, nil},
		{"host_1", domain.RoleHost, nil},
		{"admin_9", domain.RoleAdmin, nil},
		{"guest_2", domain.RoleGuest, domain.ErrForbidden},
		{"host_2", domain.RoleHost, domain.ErrForbidden},
	} {
		_, err := svc.Get(context.Background(), booking.ID, tc.caller, tc.role)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("caller %s/%s: got %v, want %v", tc.caller, tc.role, err, tc.wantErr)
		}
	}
}

func TestBookingService_UpdateStatus_PermissionMatrix(t *testing.T) {
	newBooking := func(t *testing.T) (*BookingService, *domain.Booking) {
		t.Helper()
		svc, _, properties := newTestBookingService()
		p := seedProperty(t, properties)
		booking, err := svc.Create(context.Background(), "guest_1", ports.CreateBookingInput{
			PropertyID:   p.ID,
			CheckInDate:  futureDate(10),
			CheckOutDate: futureDate(12),
			GuestCount:   1,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		return svc, booking
	}

	t.Run("host confirms", func(t *testing.T) {
		svc, booking := newBooking(t)
		updated, err := svc.UpdateStatus(context.Background(), booking.ID, "host_1", domain.RoleHost, domain.BookingConfirmed)
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if updated.Status != domain.BookingConfirmed {
			t.Fatalf("status = %s", updated.Status)
		}
	})

	t.Run("guest cannot confirm", func(t *testing.T) {
		svc, booking := newBooking(t)
		if _, err := svc.UpdateStatus(context.Background(), booking.ID, "guest_1", domain.RoleGuest, domain.BookingConfirmed); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("guest cancels own booking", func(t *testing.T) {
		svc, booking := newBooking(t)
		updated, err := svc.UpdateStatus(context.Background(), booking.ID, "guest_1", domain.RoleGuest, domain.BookingCancelled)
		if err != nil {
			t.Fatalf("UpdateStatus: %v", err)
		}
		if updated.Status != domain.BookingCancelled {
			t.Fatalf("status = %s", updated.Status)
		}
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		svc, booking := newBooking(t)
		if _, err := svc.UpdateStatus(context.Background(), booking.ID, "guest_2", domain.RoleGuest, domain.BookingCancelled); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		svc, booking := newBooking(t)
		if _, err := svc.UpdateStatus(context.Background(), booking.ID, "host_1", domain.RoleHost, domain.BookingPending); !errors.Is(err, domain.ErrForbidden) && !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected rejection, got %v", err)
		}
	})

	t.Run("complete before checkout is rejected", func(t *testing.T) {
		svc, booking := newBooking(t)
		if _, err := svc.UpdateStatus(context.Background(), booking.ID, "host_1", domain.RoleHost, domain.BookingConfirmed); err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if _, err := svc.UpdateStatus(context.Background(), booking.ID, "host_1", domain.RoleHost, domain.BookingCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition before checkout, got %v", err)
		}
	})
}

func TestBookingService_List_ScopedByRole(t *testing.T) {
	svc, _, properties := newTestBookingService()
	p := seedProperty(t, properties)

	mk := func(guest string) {
		if _, err := svc.Create(context.Background(), guest, ports.CreateBookingInput{
			PropertyID:   p.ID,
			CheckInDate:  futureDate(10 + 10*len(guest)),
			CheckOutDate: futureDate(12 + 10*len(guest)),
			GuestCount:   1,
		}); err != nil {
			t.Fatalf("Create for %s: %v", guest, err)
		}
	}
	mk("g1")
	mk("g2xx")

	guestView, err := svc.List(context.Background(), "g1", domain.RoleGuest, ports.ListBookingsFilter{})
	if err != nil {
		t.Fatalf("guest list: %v", err)
	}
	if len(guestView.Items) != 1 || guestView.Items[0].GuestID != "g1" {
		t.Fatalf("guest sees %d bookings", len(guestView.Items))
	}

	hostView, err := svc.List(context.Background(), "host_1", domain.RoleHost, ports.ListBookingsFilter{})
	if err != nil {
		t.Fatalf("host list: %v", err)
	}
	if len(hostView.Items) != 2 {
		t.Fatalf("host sees %d bookings, want 2", len(hostView.Items))
	}

	adminView, err := svc.List(context.Background(), "admin_1", domain.RoleAdmin, ports.ListBookingsFilter{})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminView.Items) != 2 {
		t.Fatalf("admin sees %d bookings, want 2", len(adminView.Items))
	}
}
