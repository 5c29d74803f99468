package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// ── In-memory UnitRepository stub ────────────────────────────────────────────

type stubUnitRepo struct {
	units map[uuid.UUID]*model.Unit

	failCreate   error
	failReassign error
	failDelete   error
}

func newStubUnitRepo() *stubUnitRepo {
	return &stubUnitRepo{units: make(map[uuid.UUID]*model.Unit)}
}

func (r *stubUnitRepo) CreateBatch(_ context.Context, units []model.Unit) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	for i := range units {
		u := units[i]
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.units[u.ID] = &u
	}
	return nil
}

func (r *stubUnitRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*model.Unit, error) {
	u, ok := r.units[id]
	if !ok || u.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUnitRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]model.Unit, error) {
	var out []model.Unit
	for _, id := range ids {
		if u, ok := r.units[id]; ok && u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUnitRepo) List(_ context.Context, tenantID uuid.UUID, filter dto.UnitFilter) ([]model.Unit, error) {
	var out []model.Unit
	for _, u := range r.units {
		if u.TenantID != tenantID {
			continue
		}
		if filter.Warehouse != "" && string(u.Warehouse) != filter.Warehouse {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SerialNumber < out[j].SerialNumber })
	return out, nil
}

func (r *stubUnitRepo) FindByName(_ context.Context, tenantID uuid.UUID, name string) ([]model.Unit, error) {
	var out []model.Unit
	for _, u := range r.units {
		if u.TenantID == tenantID && strings.EqualFold(u.Name, name) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUnitRepo) UpdateFields(_ context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error {
	u, ok := r.units[id]
	if !ok || u.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := fields["warehouse"]; ok {
		u.Warehouse = v.(warehouse.ID)
	}
	if v, ok := fields["updated_at"]; ok {
		at := v.(time.Time)
		u.UpdatedAt = &at
	}
	return nil
}

func (r *stubUnitRepo) ReassignWarehouse(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID, to warehouse.ID, at time.Time) error {
	if r.failReassign != nil {
		return r.failReassign
	}
	for _, id := range ids {
		if u, ok := r.units[id]; ok && u.TenantID == tenantID {
			u.Warehouse = to
			t := at
			u.TransferredAt = &t
		}
	}
	return nil
}

func (r *stubUnitRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	if u, ok := r.units[id]; ok && u.TenantID == tenantID {
		delete(r.units, id)
	}
	return nil
}

func (r *stubUnitRepo) DeleteByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	for _, id := range ids {
		if u, ok := r.units[id]; ok && u.TenantID == tenantID {
			delete(r.units, id)
		}
	}
	return nil
}

func (r *stubUnitRepo) DeleteAll(_ context.Context, tenantID uuid.UUID) error {
	for id, u := range r.units {
		if u.TenantID == tenantID {
			delete(r.units, id)
		}
	}
	return nil
}

// ── In-memory ActivityRepository stub ────────────────────────────────────────

type stubActivityRepo struct {
	transfers     []model.Transfer
	sales         []model.Sale
	deletions     []model.Deletion
	modifications []model.Modification

	failCreateSale error
}

func newStubActivityRepo() *stubActivityRepo { return &stubActivityRepo{} }

func (r *stubActivityRepo) CreateTransfer(_ context.Context, t *model.Transfer) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transfers = append(r.transfers, *t)
	return nil
}

func (r *stubActivityRepo) ListTransfers(_ context.Context, tenantID uuid.UUID) ([]model.Transfer, error) {
	var out []model.Transfer
	for _, t := range r.transfers {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransferredAt.After(out[j].TransferredAt) })
	return out, nil
}

func (r *stubActivityRepo) FindTransfer(_ context.Context, tenantID, id uuid.UUID) (*model.Transfer, error) {
	for i := range r.transfers {
		if r.transfers[i].ID == id && r.transfers[i].TenantID == tenantID {
			cp := r.transfers[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubActivityRepo) UpdateTransfer(_ context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error {
	for i := range r.transfers {
		if r.transfers[i].ID == id && r.transfers[i].TenantID == tenantID {
			if v, ok := fields["to_warehouse"]; ok {
				r.transfers[i].ToWarehouse = warehouse.ID(v.(string))
			}
			if v, ok := fields["item_count"]; ok {
				r.transfers[i].ItemCount = v.(int)
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubActivityRepo) DeleteTransfer(_ context.Context, tenantID, id uuid.UUID) error {
	for i := range r.transfers {
		if r.transfers[i].ID == id && r.transfers[i].TenantID == tenantID {
			r.transfers = append(r.transfers[:i], r.transfers[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubActivityRepo) CreateSale(_ context.Context, s *model.Sale) error {
	if r.failCreateSale != nil {
		return r.failCreateSale
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *stubActivityRepo) ListSales(_ context.Context, tenantID uuid.UUID) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldAt.After(out[j].SoldAt) })
	return out, nil
}

func (r *stubActivityRepo) FindSale(_ context.Context, tenantID, id uuid.UUID) (*model.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id && r.sales[i].TenantID == tenantID {
			cp := r.sales[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubActivityRepo) UpdateSale(_ context.Context, tenantID, id uuid.UUID, fields map[string]interface{}) error {
	for i := range r.sales {
		if r.sales[i].ID == id && r.sales[i].TenantID == tenantID {
			if v, ok := fields["customer_name"]; ok {
				r.sales[i].CustomerName = v.(string)
			}
			if v, ok := fields["warehouse"]; ok {
				r.sales[i].Warehouse = warehouse.ID(v.(string))
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubActivityRepo) DeleteSale(_ context.Context, tenantID, id uuid.UUID) error {
	for i := range r.sales {
		if r.sales[i].ID == id && r.sales[i].TenantID == tenantID {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubActivityRepo) CreateDeletion(_ context.Context, d *model.Deletion) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.deletions = append(r.deletions, *d)
	return nil
}

func (r *stubActivityRepo) ListDeletions(_ context.Context, tenantID uuid.UUID) ([]model.Deletion, error) {
	var out []model.Deletion
	for _, d := range r.deletions {
		if d.TenantID == tenantID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubActivityRepo) DeleteDeletion(_ context.Context, tenantID, id uuid.UUID) error {
	for i := range r.deletions {
		if r.deletions[i].ID == id && r.deletions[i].TenantID == tenantID {
			r.deletions = append(r.deletions[:i], r.deletions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubActivityRepo) CreateModification(_ context.Context, m *model.Modification) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.modifications = append(r.modifications, *m)
	return nil
}

func (r *stubActivityRepo) ListModifications(_ context.Context, tenantID uuid.UUID) ([]model.Modification, error) {
	var out []model.Modification
	for _, m := range r.modifications {
		if m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubActivityRepo) DeleteModification(_ context.Context, tenantID, id uuid.UUID) error {
	for i := range r.modifications {
		if r.modifications[i].ID == id && r.modifications[i].TenantID == tenantID {
			r.modifications = append(r.modifications[:i], r.modifications[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── In-memory CustomerRepository stub ────────────────────────────────────────

type customerKey struct {
	tenant     uuid.UUID
	normalized string
}

type stubCustomerRepo struct {
	customers map[customerKey]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[customerKey]*model.Customer)}
}

func (r *stubCustomerRepo) FindByNormalizedName(_ context.Context, tenantID uuid.UUID, normalized string) (*model.Customer, error) {
	c, ok := r.customers[customerKey{tenantID, normalized}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.customers[customerKey{c.TenantID, c.NormalizedName}] = &cp
	return nil
}

func (r *stubCustomerRepo) Save(_ context.Context, c *model.Customer) error {
	cp := *c
	r.customers[customerKey{c.TenantID, c.NormalizedName}] = &cp
	return nil
}

func (r *stubCustomerRepo) List(_ context.Context, tenantID uuid.UUID) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastPurchase.After(out[j].LastPurchase) })
	return out, nil
}

// ── UserRepository stub ──────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) ListIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids, nil
}

// ── Notifier stub ────────────────────────────────────────────────────────────

type stubNotifier struct {
	transfers []model.Transfer
	sales     []model.Sale
}

func (n *stubNotifier) NotifyTransfer(_ context.Context, t model.Transfer) {
	n.transfers = append(n.transfers, t)
}

func (n *stubNotifier) NotifySale(_ context.Context, s model.Sale) {
	n.sales = append(n.sales, s)
}
