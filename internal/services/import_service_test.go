package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/repositories"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

/* ------------------------------------------------------------------
   In-memory fakes
------------------------------------------------------------------ */

type fakeWardRepo struct {
	wards []*models.Ward
}

func (r *fakeWardRepo) Create(_ context.Context, w *models.Ward) error {
	// A nil slice encodes as SQL NULL; the real column is NOT NULL.
	if w.Mohallas == nil {
		return errors.New(`null value in column "mohallas" violates not-null constraint`)
	}
	for _, existing := range r.wards {
		if existing.CorporateName == w.CorporateName && existing.WardName == w.WardName {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	cp := *w
	cp.Mohallas = append([]string{}, w.Mohallas...)
	r.wards = append(r.wards, &cp)
	return nil
}

func (r *fakeWardRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Ward, error) {
	for _, w := range r.wards {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}

func (r *fakeWardRepo) GetByCorporateAndName(_ context.Context, corporateName, wardName string) (*models.Ward, error) {
	for _, w := range r.wards {
		if w.CorporateName == corporateName && w.WardName == wardName {
			return w, nil
		}
	}
	return nil, nil
}

func (r *fakeWardRepo) AppendMohalla(_ context.Context, id uuid.UUID, name string) error {
	for _, w := range r.wards {
		if w.ID == id && !w.HasMohalla(name) {
			w.Mohallas = append(w.Mohallas, name)
		}
	}
	return nil
}

func (r *fakeWardRepo) ListAll(_ context.Context) ([]*models.Ward, error) {
	return r.wards, nil
}

type fakePropertyRepo struct {
	props     []*models.Property
	failOnIDs map[string]error // propertyID -> error to return from Create
}

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	if err := r.failOnIDs[p.PropertyID]; err != nil {
		return err
	}
	for _, existing := range r.props {
		if existing.PropertyID == p.PropertyID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	cp := *p
	r.props = append(r.props, &cp)
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	for _, p := range r.props {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePropertyRepo) GetByPropertyID(_ context.Context, propertyID string) (*models.Property, error) {
	for _, p := range r.props {
		if p.PropertyID == propertyID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePropertyRepo) SetDeliveryOutcome(_ context.Context, id, deliveryID uuid.UUID, status models.DeliveryStatus) error {
	for _, p := range r.props {
		if p.ID == id {
			p.DeliveryStatus = status
			p.LastDeliveryID = &deliveryID
			return nil
		}
	}
	return utils.ErrNoRowsUpdated
}

func (r *fakePropertyRepo) ListProperties(_ context.Context, f repositories.PropertyFilter) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.props {
		if f.WardID != nil && p.WardID != *f.WardID {
			continue
		}
		if f.Status != "" && p.DeliveryStatus != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePropertyRepo) CountByStatus(_ context.Context) (map[models.DeliveryStatus]int, error) {
	out := map[models.DeliveryStatus]int{}
	for _, p := range r.props {
		out[p.DeliveryStatus]++
	}
	return out, nil
}

func (r *fakePropertyRepo) CountByWardAndStatus(_ context.Context) (map[uuid.UUID]map[models.DeliveryStatus]int, error) {
	out := map[uuid.UUID]map[models.DeliveryStatus]int{}
	for _, p := range r.props {
		if out[p.WardID] == nil {
			out[p.WardID] = map[models.DeliveryStatus]int{}
		}
		out[p.WardID][p.DeliveryStatus]++
	}
	return out, nil
}

type fakeUploadRepo struct {
	records   []*models.UploadRecord
	createErr error
}

func (r *fakeUploadRepo) Create(_ context.Context, rec *models.UploadRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	if rec.Errors == nil {
		return errors.New(`null value in column "errors" violates not-null constraint`)
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeUploadRepo) ListRecent(_ context.Context, limit int) ([]*models.UploadRecord, error) {
	if len(r.records) > limit {
		return r.records[:limit], nil
	}
	return r.records, nil
}

func (r *fakeUploadRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return utils.ErrNotFound
}

func (r *fakeUploadRepo) TrimOlderThanNewest(_ context.Context, keep int) (int64, error) {
	if len(r.records) <= keep {
		return 0, nil
	}
	n := int64(len(r.records) - keep)
	r.records = r.records[len(r.records)-keep:]
	return n, nil
}

type fakeUserRepo struct {
	users []*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role models.UserRole) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

/* ------------------------------------------------------------------
   Helpers
------------------------------------------------------------------ */

const testHeader = "S.No,Property ID,Corporate Ward No,Corporate Name,Ward Name,Mohalla,Property Type,Category,Owner Name,House No,Address,Popular Name\n"

type importFixture struct {
	svc        *ImportService
	wards      *fakeWardRepo
	props      *fakePropertyRepo
	uploads    *fakeUploadRepo
	users      *fakeUserRepo
	uploaderID uuid.UUID
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()
	wards := &fakeWardRepo{}
	props := &fakePropertyRepo{failOnIDs: map[string]error{}}
	uploads := &fakeUploadRepo{}
	uploaderID := uuid.New()
	users := &fakeUserRepo{users: []*models.User{{
		ID:   uploaderID,
		Name: "Admin One",
		Role: models.RoleAdmin,
	}}}
	return &importFixture{
		svc:        NewImportService(wards, props, uploads, users),
		wards:      wards,
		props:      props,
		uploads:    uploads,
		users:      users,
		uploaderID: uploaderID,
	}
}

func (f *importFixture) importCSV(t *testing.T, body string) *ImportSummary {
	t.Helper()
	summary, err := f.svc.ImportProperties(
		context.Background(), "props.csv", "text/csv", f.uploaderID, []byte(testHeader+body),
	)
	require.NoError(t, err)
	return summary
}

func csvRow(propertyID, corporate, ward, mohalla, owner, address string) string {
	return fmt.Sprintf(",%s,12,%s,%s,%s,Residential,,%s,H-1,%s,\n",
		propertyID, corporate, ward, mohalla, owner, address)
}

/* ------------------------------------------------------------------
   Tests
------------------------------------------------------------------ */

func TestImportAllRowsSucceed(t *testing.T) {
	f := newImportFixture(t)

	summary := f.importCSV(t,
		csvRow("P-1", "Varanasi", "Ward A", "Lanka", "Ram", "Addr 1")+
			csvRow("P-2", "Varanasi", "Ward A", "Assi", "Shyam", "Addr 2")+
			csvRow("P-3", "Varanasi", "Ward B", "Sigra", "Gita", "Addr 3"))

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Success)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, summary.Duplicate)
	assert.Equal(t, models.UploadStatusSuccess, summary.Status)
	assert.Empty(t, summary.Errors)

	// Exactly one ward per distinct (corporate, ward) pair; mohallas unioned.
	require.Len(t, f.wards.wards, 2)
	wardA, err := f.wards.GetByCorporateAndName(context.Background(), "Varanasi", "Ward A")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Lanka", "Assi"}, wardA.Mohallas)

	// Every imported property starts out pending.
	for _, p := range f.props.props {
		assert.Equal(t, models.DeliveryStatusPending, p.DeliveryStatus)
	}
}

func TestImportCountersAlwaysReconcile(t *testing.T) {
	f := newImportFixture(t)
	f.props.failOnIDs["P-4"] = errors.New("connection reset by peer")

	// Existing property to force a duplicate.
	require.NoError(t, f.props.Create(context.Background(), &models.Property{
		ID: uuid.New(), PropertyID: "P-2", OwnerName: "Old Owner",
	}))

	summary := f.importCSV(t,
		csvRow("P-1", "Varanasi", "Ward A", "Lanka", "Ram", "Addr 1")+
			csvRow("P-2", "Varanasi", "Ward A", "Assi", "Shyam", "Addr 2")+ // duplicate
			csvRow("P-3", "Varanasi", "Ward A", "", "", "Addr 3")+ // missing owner
			csvRow("P-4", "Varanasi", "Ward A", "Lanka", "Mohan", "Addr 4")) // store error

	assert.Equal(t, summary.Total, summary.Success+summary.Failed+summary.Duplicate)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 1, summary.Duplicate)
	assert.Equal(t, models.UploadStatusPartial, summary.Status)
}

func TestImportMissingRequiredFieldsRowNumbering(t *testing.T) {
	f := newImportFixture(t)

	// Data row 2 (file row 3) has an empty owner name.
	summary := f.importCSV(t,
		csvRow("P-1", "Varanasi", "Ward A", "Lanka", "Ram", "Addr 1")+
			csvRow("P-2", "Varanasi", "Ward A", "Assi", "", "Addr 2")+
			csvRow("P-3", "Varanasi", "Ward A", "Sigra", "Gita", "Addr 3"))

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Success)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Duplicate)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "Row 3: Missing required fields", summary.Errors[0])
}

func TestImportDuplicateLeavesExistingUntouched(t *testing.T) {
	f := newImportFixture(t)
	existing := &models.Property{ID: uuid.New(), PropertyID: "P-1", OwnerName: "Original Owner", Address: "Original Addr"}
	require.NoError(t, f.props.Create(context.Background(), existing))

	summary := f.importCSV(t, csvRow("P-1", "Varanasi", "Ward A", "Lanka", "New Owner", "New Addr"))

	assert.Equal(t, 1, summary.Duplicate)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "Row 2: Property ID P-1 already exists", summary.Errors[0])

	stored, err := f.props.GetByPropertyID(context.Background(), "P-1")
	require.NoError(t, err)
	assert.Equal(t, "Original Owner", stored.OwnerName)
	assert.Equal(t, "Original Addr", stored.Address)
}

func TestImportIntraFileDuplicateClassifiedCleanly(t *testing.T) {
	f := newImportFixture(t)

	summary := f.importCSV(t,
		csvRow("P-1", "Varanasi", "Ward A", "Lanka", "Ram", "Addr 1")+
			csvRow("P-1", "Varanasi", "Ward A", "Assi", "Shyam", "Addr 2"))

	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 1, summary.Duplicate)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "Row 3: Property ID P-1 already exists", summary.Errors[0])
}

func TestImportIdenticalFileTwice(t *testing.T) {
	f := newImportFixture(t)
	body := csvRow("P-1", "Varanasi", "Ward A", "Lanka", "Ram", "Addr 1") +
		csvRow("P-2", "Varanasi", "Ward A", "Assi", "Shyam", "Addr 2")

	first := f.importCSV(t, body)
	assert.Equal(t, 2, first.Success)

	second := f.importCSV(t, body)
	assert.Equal(t, 0, second.Success)
	assert.Equal(t, second.Total, second.Duplicate)
	assert.Equal(t, models.UploadStatusFailed, second.Status)
}

func TestImportAllRowsInvalid(t *testing.T) {
	f := newImportFixture(t)

	summary := f.importCSV(t,
		csvRow("", "Varanasi", "Ward A", "Lanka", "Ram", "Addr 1")+
			csvRow("P-2", "Varanasi", "Ward A", "Assi", "", ""))

	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 0, summary.Success)
	assert.Equal(t, models.UploadStatusFailed, summary.Status)
}

func TestImportRejectsHeaderOnlyFileBeforeAnyWrite(t *testing.T) {
	f := newImportFixture(t)

	_, err := f.svc.ImportProperties(
		context.Background(), "props.csv", "text/csv", f.uploaderID, []byte(testHeader),
	)
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, utils.ErrCodeFileEmptyOrInvalid, appErr.Code)

	assert.Empty(t, f.uploads.records, "no upload record for a rejected file")
	assert.Empty(t, f.props.props)
	assert.Empty(t, f.wards.wards)
}

func TestImportRejectsUnsupportedFileType(t *testing.T) {
	f := newImportFixture(t)

	_, err := f.svc.ImportProperties(
		context.Background(), "props.pdf", "application/pdf", f.uploaderID, []byte("%PDF-1.4"),
	)
	require.Error(t, err)

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.ErrCodeUnsupportedFile, appErr.Code)
}

func TestImportWritesUploadRecord(t *testing.T) {
	f := newImportFixture(t)

	summary := f.importCSV(t,
		csvRow("P-1", "Varanasi", "Ward A", "Lanka", "Ram", "Addr 1")+
			csvRow("P-2", "Varanasi", "Ward A", "", "", "Addr 2"))

	require.Len(t, f.uploads.records, 1)
	rec := f.uploads.records[0]
	assert.Equal(t, "props.csv", rec.Filename)
	assert.Equal(t, "Admin One", rec.UploadedBy)
	assert.Equal(t, summary.Total, rec.Total)
	assert.Equal(t, summary.Success, rec.Success)
	assert.Equal(t, summary.Failed, rec.Failed)
	assert.Equal(t, summary.Duplicate, rec.Duplicate)
	assert.Equal(t, summary.Status, rec.Status)
	assert.Equal(t, summary.Errors, rec.Errors)
	assert.Equal(t, rec.Total, rec.Success+rec.Failed+rec.Duplicate)
}

func TestImportRowWithoutMohalla(t *testing.T) {
	f := newImportFixture(t)

	// Mohalla is not a required field; the ward row must still
	// satisfy the NOT NULL array column.
	summary := f.importCSV(t, csvRow("P-1", "Varanasi", "Ward A", "", "Ram", "Addr 1"))

	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 0, summary.Failed)

	ward, err := f.wards.GetByCorporateAndName(context.Background(), "Varanasi", "Ward A")
	require.NoError(t, err)
	require.NotNil(t, ward)
	assert.NotNil(t, ward.Mohallas)
	assert.Empty(t, ward.Mohallas)
}

func TestImportCleanRunWritesUploadRecord(t *testing.T) {
	f := newImportFixture(t)

	summary := f.importCSV(t, csvRow("P-1", "Varanasi", "Ward A", "Lanka", "Ram", "Addr 1"))
	assert.Equal(t, models.UploadStatusSuccess, summary.Status)

	require.Len(t, f.uploads.records, 1)
	rec := f.uploads.records[0]
	assert.NotNil(t, rec.Errors)
	assert.Empty(t, rec.Errors)
}

func TestImportSurvivesLedgerWriteFailure(t *testing.T) {
	f := newImportFixture(t)
	f.uploads.createErr = errors.New("ledger table unavailable")

	summary, err := f.svc.ImportProperties(
		context.Background(), "props.csv", "text/csv", f.uploaderID,
		[]byte(testHeader+csvRow("P-1", "Varanasi", "Ward A", "Lanka", "Ram", "Addr 1")),
	)
	require.NoError(t, err, "rows are committed; the caller still gets the summary")
	assert.Equal(t, 1, summary.Success)
}

func TestDeleteUploadNotFound(t *testing.T) {
	f := newImportFixture(t)

	err := f.svc.DeleteUpload(context.Background(), uuid.New())
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}
