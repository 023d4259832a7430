package recalc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
)

// fakePaymentStore keeps payment records in memory keyed by (resident, month)
type fakePaymentStore struct {
	records   map[int64]map[string]*PaymentRecord
	saves     int
	failMonth string // SaveAmounts fails for this month when set
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{records: make(map[int64]map[string]*PaymentRecord)}
}

func (s *fakePaymentStore) add(p *PaymentRecord) {
	if s.records[p.ResidentID] == nil {
		s.records[p.ResidentID] = make(map[string]*PaymentRecord)
	}
	cp := *p
	s.records[p.ResidentID][p.Month] = &cp
}

func (s *fakePaymentStore) get(residentID int64, month string) *PaymentRecord {
	return s.records[residentID][month]
}

func (s *fakePaymentStore) GetByResidentMonth(ctx context.Context, residentID int64, month string) (*PaymentRecord, error) {
	p, ok := s.records[residentID][month]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakePaymentStore) ListAfterMonth(ctx context.Context, residentID int64, month string) ([]*PaymentRecord, error) {
	var months []string
	for m := range s.records[residentID] {
		if m > month {
			months = append(months, m)
		}
	}
	sort.Strings(months)

	out := make([]*PaymentRecord, 0, len(months))
	for _, m := range months {
		cp := *s.records[residentID][m]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakePaymentStore) SaveAmounts(ctx context.Context, p *PaymentRecord) error {
	if s.failMonth != "" && p.Month == s.failMonth {
		return errors.New("write refused")
	}
	s.saves++
	s.add(p)
	return nil
}

// fakeResidentStore keeps residents in memory
type fakeResidentStore struct {
	residents map[int64]*ResidentRecord
}

func newFakeResidentStore(residents ...*ResidentRecord) *fakeResidentStore {
	s := &fakeResidentStore{residents: make(map[int64]*ResidentRecord)}
	for _, r := range residents {
		cp := *r
		s.residents[r.ID] = &cp
	}
	return s
}

func (s *fakeResidentStore) GetByID(ctx context.Context, id int64) (*ResidentRecord, error) {
	r, ok := s.residents[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *fakeResidentStore) SaveBaseMaintenance(ctx context.Context, id int64, base float64) error {
	r, ok := s.residents[id]
	if !ok {
		return errors.New("resident missing")
	}
	r.BaseMaintenance = base
	return nil
}

// recordingAudit captures audit events
type recordingAudit struct {
	changes []BaseChange
}

func (a *recordingAudit) RecordBaseChange(ctx context.Context, change BaseChange) error {
	a.changes = append(a.changes, change)
	return nil
}

// recordingNotifier captures status-change events
type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) StatusChanged(ctx context.Context, p *PaymentRecord, oldStatus Status) error {
	n.events = append(n.events, fmt.Sprintf("%s:%s->%s", p.Month, oldStatus, p.Status))
	return nil
}

func TestCarryForward(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 3000})
	engine := NewEngine(payments, residents, nil, nil)

	t.Run("no previous record", func(t *testing.T) {
		got, err := engine.CarryForward(ctx, 1, "2025-01")
		if err != nil {
			t.Fatalf("CarryForward error: %v", err)
		}
		if got != 0 {
			t.Fatalf("expected zero carry-forward for first month, got %v", got)
		}
	})

	payments.add(&PaymentRecord{ID: 10, ResidentID: 1, Month: "2025-01", AmountDue: 3000, AmountPaid: 1000, Status: StatusPartial})

	t.Run("unpaid balance", func(t *testing.T) {
		got, err := engine.CarryForward(ctx, 1, "2025-02")
		if err != nil {
			t.Fatalf("CarryForward error: %v", err)
		}
		if got != 2000 {
			t.Fatalf("expected carry-forward 2000, got %v", got)
		}
	})

	payments.add(&PaymentRecord{ID: 11, ResidentID: 1, Month: "2025-02", AmountDue: 3000, AmountPaid: 3500, Status: StatusPaid})

	t.Run("overpayment clamps to zero", func(t *testing.T) {
		got, err := engine.CarryForward(ctx, 1, "2025-03")
		if err != nil {
			t.Fatalf("CarryForward error: %v", err)
		}
		if got != 0 {
			t.Fatalf("expected zero carry-forward after overpayment, got %v", got)
		}
	})

	t.Run("gap month means zero", func(t *testing.T) {
		got, err := engine.CarryForward(ctx, 1, "2025-06")
		if err != nil {
			t.Fatalf("CarryForward error: %v", err)
		}
		if got != 0 {
			t.Fatalf("expected zero carry-forward across data gap, got %v", got)
		}
	})
}

// Scenario: January was fully paid, then edited down to a partial payment.
// February must absorb the unpaid balance.
func TestCascadePropagatesUnpaidBalance(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 3000})
	notifier := &recordingNotifier{}
	engine := NewEngine(payments, residents, nil, notifier)

	// January already edited: paid dropped from 3000 to 1000
	payments.add(&PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-01", AmountDue: 3000, AmountPaid: 1000, Status: StatusPartial})
	payments.add(&PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-02", AmountDue: 3000, AmountPaid: 0, Status: StatusPending})

	if err := engine.Cascade(ctx, 1, "2025-01"); err != nil {
		t.Fatalf("Cascade error: %v", err)
	}

	feb := payments.get(1, "2025-02")
	if feb.AmountDue != 5000 {
		t.Fatalf("expected February due 5000 (3000 base + 2000 carry), got %v", feb.AmountDue)
	}
	if feb.Status != StatusPending {
		t.Fatalf("expected February to stay PENDING, got %s", feb.Status)
	}
	if !strings.Contains(feb.Remarks, "2,000.00") {
		t.Fatalf("expected remarks to mention the carry forward, got %q", feb.Remarks)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("status did not change, expected no notifications, got %v", notifier.events)
	}
}

func TestCascadeWalksMonthsInOrder(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 1000})
	engine := NewEngine(payments, residents, nil, nil)

	// Nothing paid anywhere: arrears must accumulate month over month.
	payments.add(&PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-01", AmountDue: 1000, AmountPaid: 0, Status: StatusPending})
	payments.add(&PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-02", AmountDue: 1000, AmountPaid: 0, Status: StatusPending})
	payments.add(&PaymentRecord{ID: 3, ResidentID: 1, Month: "2025-03", AmountDue: 1000, AmountPaid: 0, Status: StatusPending})
	payments.add(&PaymentRecord{ID: 4, ResidentID: 1, Month: "2025-04", AmountDue: 1000, AmountPaid: 0, Status: StatusPending})

	if err := engine.Cascade(ctx, 1, "2025-01"); err != nil {
		t.Fatalf("Cascade error: %v", err)
	}

	wants := map[string]float64{
		"2025-02": 2000,
		"2025-03": 3000,
		"2025-04": 4000,
	}
	for month, want := range wants {
		if got := payments.get(1, month).AmountDue; got != want {
			t.Fatalf("month %s: expected due %v, got %v", month, want, got)
		}
	}
}

func TestCascadeIdempotent(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 3000})
	engine := NewEngine(payments, residents, nil, nil)

	payments.add(&PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-01", AmountDue: 3000, AmountPaid: 500, Status: StatusPartial})
	payments.add(&PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-02", AmountDue: 3000, AmountPaid: 0, Status: StatusPending})
	payments.add(&PaymentRecord{ID: 3, ResidentID: 1, Month: "2025-03", AmountDue: 3000, AmountPaid: 0, Status: StatusPending})

	if err := engine.Cascade(ctx, 1, "2025-01"); err != nil {
		t.Fatalf("first Cascade error: %v", err)
	}
	savesAfterFirst := payments.saves

	if err := engine.Cascade(ctx, 1, "2025-01"); err != nil {
		t.Fatalf("second Cascade error: %v", err)
	}
	if payments.saves != savesAfterFirst {
		t.Fatalf("second cascade should be a no-op, but wrote %d more records", payments.saves-savesAfterFirst)
	}
}

// Every month fully paid: after one cascade the carry-forwards all collapse
// to zero and each month's due returns to the bare base maintenance.
func TestCascadeConvergesWhenFullyPaid(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 2500})
	engine := NewEngine(payments, residents, nil, nil)

	// Historic arrears baked into the dues, but every month's paid amount
	// covers its (old) due in full.
	payments.add(&PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-01", AmountDue: 2500, AmountPaid: 2500, Status: StatusPaid})
	payments.add(&PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-02", AmountDue: 4000, AmountPaid: 4000, Status: StatusPaid})
	payments.add(&PaymentRecord{ID: 3, ResidentID: 1, Month: "2025-03", AmountDue: 5500, AmountPaid: 5500, Status: StatusPaid})

	if err := engine.Cascade(ctx, 1, "2025-01"); err != nil {
		t.Fatalf("Cascade error: %v", err)
	}

	for _, month := range []string{"2025-02", "2025-03"} {
		p := payments.get(1, month)
		if p.AmountDue != 2500 {
			t.Fatalf("month %s: expected due to settle at base 2500, got %v", month, p.AmountDue)
		}
		if p.Status != StatusPaid {
			t.Fatalf("month %s: expected PAID, got %s", month, p.Status)
		}
	}

	carry, err := engine.CarryForward(ctx, 1, "2025-04")
	if err != nil {
		t.Fatalf("CarryForward error: %v", err)
	}
	if carry != 0 {
		t.Fatalf("expected zero carry-forward after convergence, got %v", carry)
	}
}

func TestCascadeNotifiesOnStatusChange(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 3000})
	notifier := &recordingNotifier{}
	engine := NewEngine(payments, residents, nil, notifier)

	// January settled in full by the edit; February's inflated due drops back
	// to base, which its partial payment now covers completely.
	payments.add(&PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-01", AmountDue: 3000, AmountPaid: 3000, Status: StatusPaid})
	payments.add(&PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-02", AmountDue: 5000, AmountPaid: 3000, Status: StatusPartial})

	if err := engine.Cascade(ctx, 1, "2025-01"); err != nil {
		t.Fatalf("Cascade error: %v", err)
	}

	feb := payments.get(1, "2025-02")
	if feb.AmountDue != 3000 || feb.Status != StatusPaid {
		t.Fatalf("expected February due 3000 PAID, got %v %s", feb.AmountDue, feb.Status)
	}
	if len(notifier.events) != 1 || notifier.events[0] != "2025-02:PARTIAL->PAID" {
		t.Fatalf("expected one PARTIAL->PAID notification, got %v", notifier.events)
	}
}

func TestCascadeUnknownResident(t *testing.T) {
	engine := NewEngine(newFakePaymentStore(), newFakeResidentStore(), nil, nil)
	err := engine.Cascade(context.Background(), 99, "2025-01")
	if !errors.Is(err, ErrResidentNotFound) {
		t.Fatalf("expected ErrResidentNotFound, got %v", err)
	}
}

func TestCascadeReportsFailingMonth(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 1000})
	engine := NewEngine(payments, residents, nil, nil)

	payments.add(&PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-01", AmountDue: 1000, AmountPaid: 0, Status: StatusPending})
	payments.add(&PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-02", AmountDue: 1000, AmountPaid: 0, Status: StatusPending})
	payments.add(&PaymentRecord{ID: 3, ResidentID: 1, Month: "2025-03", AmountDue: 1000, AmountPaid: 0, Status: StatusPending})
	payments.failMonth = "2025-03"

	err := engine.Cascade(ctx, 1, "2025-01")
	if err == nil {
		t.Fatal("expected cascade to fail")
	}
	if !strings.Contains(err.Error(), "2025-03") {
		t.Fatalf("expected error to name the failing month, got %v", err)
	}

	// February was processed before the failure and keeps its update.
	if got := payments.get(1, "2025-02").AmountDue; got != 2000 {
		t.Fatalf("expected February updated to 2000 before failure, got %v", got)
	}
	// March keeps its stale due.
	if got := payments.get(1, "2025-03").AmountDue; got != 1000 {
		t.Fatalf("expected March untouched after failure, got %v", got)
	}
}

// Scenario: a March edit raises the due from 2500 to 3000 with no carry in
// play, implying the monthly rate itself went up.
func TestPropagateMaintenanceChange(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 2500})
	audit := &recordingAudit{}
	engine := NewEngine(payments, residents, audit, nil)

	payments.add(&PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-02", AmountDue: 2500, AmountPaid: 2500, Status: StatusPaid})
	march := &PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-03", AmountDue: 3000, AmountPaid: 3000, Status: StatusPaid}
	payments.add(march)
	payments.add(&PaymentRecord{ID: 3, ResidentID: 1, Month: "2025-04", AmountDue: 2500, AmountPaid: 0, Status: StatusPending})
	payments.add(&PaymentRecord{ID: 4, ResidentID: 1, Month: "2025-05", AmountDue: 2500, AmountPaid: 0, Status: StatusPending})

	fired, err := engine.PropagateMaintenanceChange(ctx, march, 2500, 3000, 7)
	if err != nil {
		t.Fatalf("PropagateMaintenanceChange error: %v", err)
	}
	if !fired {
		t.Fatal("expected the base change to fire")
	}

	resident, _ := residents.GetByID(ctx, 1)
	if resident.BaseMaintenance != 3000 {
		t.Fatalf("expected base maintenance updated to 3000, got %v", resident.BaseMaintenance)
	}

	if len(audit.changes) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(audit.changes))
	}
	change := audit.changes[0]
	if change.OldBase != 2500 || change.NewBase != 3000 || change.TriggerMonth != "2025-03" || change.ActorID != 7 {
		t.Fatalf("unexpected audit entry: %+v", change)
	}

	// April: March fully paid, so new base with zero carry.
	if got := payments.get(1, "2025-04").AmountDue; got != 3000 {
		t.Fatalf("expected April due 3000, got %v", got)
	}
	// May: April unpaid, so new base plus April's 3000 arrears.
	if got := payments.get(1, "2025-05").AmountDue; got != 6000 {
		t.Fatalf("expected May due 6000, got %v", got)
	}
}

// A small adjustment is a one-off correction, not a rate change.
func TestPropagateBelowThreshold(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 2500})
	audit := &recordingAudit{}
	engine := NewEngine(payments, residents, audit, nil)

	march := &PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-03", AmountDue: 2505, AmountPaid: 0, Status: StatusPending}
	payments.add(march)
	payments.add(&PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-04", AmountDue: 2500, AmountPaid: 0, Status: StatusPending})

	fired, err := engine.PropagateMaintenanceChange(ctx, march, 2500, 2505, 7)
	if err != nil {
		t.Fatalf("PropagateMaintenanceChange error: %v", err)
	}
	if fired {
		t.Fatal("a 5-unit change must not fire the base update")
	}
	if payments.saves != 0 {
		t.Fatalf("expected no writes, got %d", payments.saves)
	}
	if len(audit.changes) != 0 {
		t.Fatalf("expected no audit entries, got %d", len(audit.changes))
	}

	resident, _ := residents.GetByID(ctx, 1)
	if resident.BaseMaintenance != 2500 {
		t.Fatalf("base maintenance must stay 2500, got %v", resident.BaseMaintenance)
	}
}

func TestPropagateIgnoresNonPositiveBase(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 2500})
	engine := NewEngine(payments, residents, nil, nil)

	// Previous month left 2600 unpaid; the edit drops the due to the carry
	// alone, implying a non-positive base. That cannot be a real rate.
	payments.add(&PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-02", AmountDue: 2600, AmountPaid: 0, Status: StatusPending})
	march := &PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-03", AmountDue: 2600, AmountPaid: 0, Status: StatusPending}
	payments.add(march)

	fired, err := engine.PropagateMaintenanceChange(ctx, march, 5100, 2600, 7)
	if err != nil {
		t.Fatalf("PropagateMaintenanceChange error: %v", err)
	}
	if fired {
		t.Fatal("non-positive implied base must not fire")
	}
}

// The propagator upgrades statuses when payments cover the new due, and may
// drop PAID to PARTIAL when the due rises, but never resets a month to
// PENDING.
func TestPropagateNeverResetsToPending(t *testing.T) {
	ctx := context.Background()
	payments := newFakePaymentStore()
	residents := newFakeResidentStore(&ResidentRecord{ID: 1, BaseMaintenance: 2500})
	engine := NewEngine(payments, residents, nil, nil)

	march := &PaymentRecord{ID: 1, ResidentID: 1, Month: "2025-03", AmountDue: 3000, AmountPaid: 3000, Status: StatusPaid}
	payments.add(march)
	// April paid in full at the old rate; the raise makes it partial.
	payments.add(&PaymentRecord{ID: 2, ResidentID: 1, Month: "2025-04", AmountDue: 2500, AmountPaid: 2500, Status: StatusPaid})
	// May unpaid and already flagged overdue; it must keep that flag.
	payments.add(&PaymentRecord{ID: 3, ResidentID: 1, Month: "2025-05", AmountDue: 2500, AmountPaid: 0, Status: StatusOverdue})

	fired, err := engine.PropagateMaintenanceChange(ctx, march, 2500, 3000, 7)
	if err != nil {
		t.Fatalf("PropagateMaintenanceChange error: %v", err)
	}
	if !fired {
		t.Fatal("expected the base change to fire")
	}

	april := payments.get(1, "2025-04")
	if april.AmountDue != 3000 || april.Status != StatusPartial {
		t.Fatalf("expected April 3000 PARTIAL, got %v %s", april.AmountDue, april.Status)
	}

	may := payments.get(1, "2025-05")
	if may.Status != StatusOverdue {
		t.Fatalf("expected May to keep OVERDUE, got %s", may.Status)
	}
	// 3000 new base + 500 April shortfall
	if may.AmountDue != 3500 {
		t.Fatalf("expected May due 3500, got %v", may.AmountDue)
	}
}
