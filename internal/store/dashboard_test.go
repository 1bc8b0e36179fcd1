package store

import (
	"testing"

	"github.com/savioomio/sistema-notas-posto/internal/models"
)

// A client with a past-due pending invoice shows up as overdue everywhere at
// once; paying that invoice clears every overdue signal in the same instant.
func TestDashboardOverdueConsistency(t *testing.T) {
	conn := setupTestDB(t)
	clients := NewClientStore(conn, nil)
	invoices := NewInvoiceStore(conn, nil)
	dash := NewDashboardStore(conn)

	ana := seedClient(t, conn, "Ana Silva", "500")
	inv := seedInvoice(t, conn, ana.ID, models.InvoiceStatusPending, yesterday(), 120)

	assertOverdue := func(want bool) {
		t.Helper()

		got, err := clients.GetByID(ana.ID)
		if err != nil {
			t.Fatalf("get client: %v", err)
		}
		if got.HasOverdue != want {
			t.Fatalf("has_overdue: expected %v, got %v", want, got.HasOverdue)
		}

		listed, _, err := clients.List(1, 10, ClientFilters{Status: ClientStatusOverdue})
		if err != nil {
			t.Fatalf("list overdue clients: %v", err)
		}
		if (len(listed) == 1) != want {
			t.Fatalf("overdue client listing: expected present=%v, got %d rows", want, len(listed))
		}

		count, err := invoices.Count(InvoiceFilters{Status: InvoiceStatusOverdue})
		if err != nil {
			t.Fatalf("count overdue invoices: %v", err)
		}
		if (count == 1) != want {
			t.Fatalf("overdue invoice count: expected present=%v, got %d", want, count)
		}

		totals, err := dash.Totals()
		if err != nil {
			t.Fatalf("totals: %v", err)
		}
		wantClients := int64(0)
		if want {
			wantClients = 1
		}
		if totals.OverdueClients != wantClients {
			t.Fatalf("totals.overdue_clients: expected %d, got %d", wantClients, totals.OverdueClients)
		}

		overdueClients, _, err := dash.OverdueClients(1, 10)
		if err != nil {
			t.Fatalf("dashboard overdue clients: %v", err)
		}
		if (len(overdueClients) == 1) != want {
			t.Fatalf("dashboard overdue page: expected present=%v, got %d rows", want, len(overdueClients))
		}
	}

	assertOverdue(true)

	if _, err := invoices.Pay(inv.ID); err != nil {
		t.Fatalf("pay: %v", err)
	}

	assertOverdue(false)
}

func TestDashboardTotals(t *testing.T) {
	conn := setupTestDB(t)
	dash := NewDashboardStore(conn)

	totals, err := dash.Totals()
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.TotalClients != 0 || totals.PendingValue != 0 || totals.PaidValue != 0 {
		t.Fatalf("expected zeroed totals on empty store, got %+v", totals)
	}

	a := seedClient(t, conn, "A", "1")
	b := seedClient(t, conn, "B", "2")
	seedInvoice(t, conn, a.ID, models.InvoiceStatusPending, yesterday(), 100)
	seedInvoice(t, conn, a.ID, models.InvoiceStatusPending, nextWeek(), 40)
	seedInvoice(t, conn, b.ID, models.InvoiceStatusPaid, yesterday(), 60)

	totals, err = dash.Totals()
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.TotalClients != 2 {
		t.Errorf("total_clients: expected 2, got %d", totals.TotalClients)
	}
	if totals.OverdueClients != 1 {
		t.Errorf("overdue_clients: expected 1, got %d", totals.OverdueClients)
	}
	if totals.PendingInvoices != 2 {
		t.Errorf("pending_invoices: expected 2, got %d", totals.PendingInvoices)
	}
	if totals.PendingValue != 140 {
		t.Errorf("pending_value: expected 140, got %v", totals.PendingValue)
	}
	if totals.PaidValue != 60 {
		t.Errorf("paid_value: expected 60, got %v", totals.PaidValue)
	}
}

func TestDashboardPendingInvoicesSoonestFirst(t *testing.T) {
	conn := setupTestDB(t)
	dash := NewDashboardStore(conn)
	c := seedClient(t, conn, "C", "3")

	late := seedInvoice(t, conn, c.ID, models.InvoiceStatusPending, nextWeek(), 10)
	soon := seedInvoice(t, conn, c.ID, models.InvoiceStatusPending, yesterday(), 10)
	seedInvoice(t, conn, c.ID, models.InvoiceStatusPaid, yesterday(), 10)

	invoices, p, err := dash.PendingInvoices(1, 10)
	if err != nil {
		t.Fatalf("pending invoices: %v", err)
	}
	if p.Total != 2 || len(invoices) != 2 {
		t.Fatalf("expected the 2 pending invoices, got %d (total %d)", len(invoices), p.Total)
	}
	if invoices[0].ID != soon.ID || invoices[1].ID != late.ID {
		t.Fatalf("expected soonest due first, got %d then %d", invoices[0].ID, invoices[1].ID)
	}
}
