package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/report"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports/portstest"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789"

var (
	businessZone = time.FixedZone("CET", 60*60)
	installAt    = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
)

type storeFactory struct{ store *portstest.Store }

func (f storeFactory) Create() commands.UoW {
	return f.store.Create()
}

type queryMock[Q, R any] struct {
	mock.Mock
}

func (m *queryMock[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	args := m.Called(ctx, query)
	res, _ := args.Get(0).(R)
	return res, args.Error(1)
}

type fixture struct {
	e          *echo.Echo
	store      *portstest.Store
	clock      *portstest.Clock
	auth       *httpadapter.Authenticator
	dispatcher actor.Actor

	order  *queryMock[queries.GetOrderQuery, queries.OrderDetails]
	pool   *queryMock[queries.GetPoolOrdersQuery, []queries.OrderSummary]
	wallet *queryMock[queries.GetWalletQuery, queries.Wallet]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := portstest.NewStore()
	factory := storeFactory{store: store}
	clock := portstest.NewClock(installAt.Add(-48*time.Hour), businessZone)
	blobs := portstest.NewBlobStore()

	auth, err := httpadapter.NewAuthenticator(testSecret, "dispatch-test")
	require.NoError(t, err)
	dispatcher, err := actor.NewDispatcher(kernel.NewUUID())
	require.NoError(t, err)

	f := &fixture{
		store:      store,
		clock:      clock,
		auth:       auth,
		dispatcher: dispatcher,
		order:      &queryMock[queries.GetOrderQuery, queries.OrderDetails]{},
		pool:       &queryMock[queries.GetPoolOrdersQuery, []queries.OrderSummary]{},
		wallet:     &queryMock[queries.GetWalletQuery, queries.Wallet]{},
	}

	server := httpadapter.NewServer(
		httpadapter.Commands{
			CreateOrder:             commands.NewCreateOrderCommandHandler(factory, clock),
			AssignOrder:             commands.NewAssignOrderCommandHandler(factory, clock),
			PublishToPool:           commands.NewPublishToPoolCommandHandler(factory, clock),
			TakeFromPool:            commands.NewTakeFromPoolCommandHandler(factory, clock),
			RejectOrder:             commands.NewRejectOrderCommandHandler(factory, clock),
			StartOrder:              commands.NewStartOrderCommandHandler(factory, clock),
			FinishOrder:             commands.NewFinishOrderCommandHandler(factory, clock),
			ReportOutcome:           commands.NewReportOutcomeCommandHandler(factory, blobs, clock),
			RecordReason:            commands.NewRecordReasonCommandHandler(factory, clock),
			UpdateDelivery:          commands.NewUpdateDeliveryCommandHandler(factory, clock),
			CreateCompany:           commands.NewCreateCompanyCommandHandler(factory, clock),
			RecomputeRating:         commands.NewRecomputeRatingCommandHandler(factory),
			AppendLedgerEntry:       commands.NewAppendLedgerEntryCommandHandler(factory, clock),
			UploadDocument:          commands.NewUploadDocumentCommandHandler(factory, blobs, clock),
			CreateOrderFromDocument: commands.NewCreateOrderFromDocumentCommandHandler(factory, clock),
		},
		httpadapter.Queries{
			Order:  f.order,
			Pool:   f.pool,
			Wallet: f.wallet,
		},
		httpadapter.Reports{
			JobSheet:        report.NewJobSheetGenerator(),
			WalletStatement: report.NewWalletStatementGenerator(),
		},
		auth,
		clock,
		zerolog.Nop(),
	)

	f.e, err = server.Echo(t.Context())
	require.NoError(t, err)
	return f
}

func (f *fixture) token(t *testing.T, who actor.Actor) string {
	t.Helper()
	token, err := f.auth.Issue(who, time.Hour, time.Now())
	require.NoError(t, err)
	return token
}

func (f *fixture) company(t *testing.T, name string) (kernel.UUID, actor.Actor) {
	t.Helper()

	c, err := company.NewCompany(kernel.NewUUID(), name, "", f.clock.Now())
	require.NoError(t, err)
	f.store.SeedCompany(c)

	user, err := actor.NewCompanyUser(kernel.NewUUID(), c.ID())
	require.NoError(t, err)
	return c.ID(), user
}

func (f *fixture) do(t *testing.T, who *actor.Actor, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if who != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.token(t, *who))
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.Error {
	t.Helper()
	var body httpadapter.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newOrderBody() map[string]any {
	return map[string]any{
		"order_number":   "K-1001",
		"customer_name":  "Erika Mustermann",
		"address":        "Hauptstr. 1, 10115 Berlin",
		"phone":          "+49 30 1234567",
		"date":           "2025-03-14",
		"time_from":      "10:00",
		"time_to":        "12:00",
		"base_price_eur": "100.00",
	}
}

func TestServer_HealthAndDocument(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, nil, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, nil, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
}

func TestServer_RequiresBearerToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, nil, http.MethodGet, "/api/v1/pool", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec).Kind)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pool", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec = httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_PoolOrderLifecycle(t *testing.T) {
	f := newFixture(t)
	winnerID, winner := f.company(t, "Montage Nord")
	_, loser := f.company(t, "Küchenprofi Süd")

	rec := f.do(t, &f.dispatcher, http.MethodPost, "/api/v1/orders", newOrderBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created httpadapter.Created
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	orderPath := "/api/v1/orders/" + created.ID

	rec = f.do(t, &f.dispatcher, http.MethodPost, orderPath+"/publish", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = f.do(t, &winner, http.MethodPost, orderPath+"/take", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = f.do(t, &loser, http.MethodPost, orderPath+"/take", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, errs.KindAlreadyTaken, decodeError(t, rec).Kind)

	rec = f.do(t, &winner, http.MethodPost, orderPath+"/start", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	rec = f.do(t, &winner, http.MethodPost, orderPath+"/finish", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = f.do(t, &winner, http.MethodPost, orderPath+"/finish", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, errs.KindAlreadyFinished, decodeError(t, rec).Kind)

	orderID := kernel.MustUUIDFromString(created.ID)
	assert.Equal(t, order.Finished, f.store.Order(orderID).Status())
	assert.Equal(t, "100.00", f.store.Company(winnerID).Balance().String())
}

func TestServer_AssignNeedsCompany(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, &f.dispatcher, http.MethodPost, "/api/v1/orders", newOrderBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created httpadapter.Created
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, &f.dispatcher, http.MethodPost, "/api/v1/orders/"+created.ID+"/assign", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.KindInvalidValue, decodeError(t, rec).Kind)
}

func TestServer_RejectsRequestsOutsideTheSchema(t *testing.T) {
	f := newFixture(t)

	body := newOrderBody()
	delete(body, "customer_name")
	rec := f.do(t, &f.dispatcher, http.MethodPost, "/api/v1/orders", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.KindInvalidValue, decodeError(t, rec).Kind)

	body = newOrderBody()
	body["base_price_eur"] = "a lot"
	rec = f.do(t, &f.dispatcher, http.MethodPost, "/api/v1/orders", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, &f.dispatcher, http.MethodPost, "/api/v1/orders/not-a-uuid/publish", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CompanyUserCannotCreateOrders(t *testing.T) {
	f := newFixture(t)
	_, user := f.company(t, "Montage Nord")

	rec := f.do(t, &user, http.MethodPost, "/api/v1/orders", newOrderBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, errs.KindForbidden, decodeError(t, rec).Kind)
}

func TestServer_GetOrderNotFound(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()

	f.order.On("Handle", mock.Anything, mock.Anything).
		Return(queries.OrderDetails{}, errs.NewObjectNotFoundError("order", id)).Once()

	rec := f.do(t, &f.dispatcher, http.MethodGet, "/api/v1/orders/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errs.KindNotFound, decodeError(t, rec).Kind)
	f.order.AssertExpectations(t)
}

func TestServer_InternalErrorsAreNotLeaked(t *testing.T) {
	f := newFixture(t)

	f.pool.On("Handle", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()

	rec := f.do(t, &f.dispatcher, http.MethodGet, "/api/v1/pool", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, errs.KindInternal, body.Kind)
	assert.NotContains(t, body.Message, assert.AnError.Error())
}

func TestServer_WalletAndStatement(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage Nord")

	wallet := queries.Wallet{
		CompanyID:   companyID,
		CompanyName: "Montage Nord",
		Balance:     kernel.MustMoney("80.00"),
		Entries: []queries.WalletEntry{
			{ID: kernel.NewUUID(), Type: "base_payment", Source: "open_pool", Amount: kernel.MustMoney("100"), CreatedAt: installAt},
			{ID: kernel.NewUUID(), Type: "penalty", Source: "direct", Amount: kernel.MustMoney("-20"), CreatedAt: installAt},
		},
	}
	f.wallet.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetWalletQuery) bool {
		return q.CompanyID().IsEqual(companyID)
	})).Return(wallet, nil).Twice()

	rec := f.do(t, &user, http.MethodGet, "/api/v1/companies/"+companyID.String()+"/wallet", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got httpadapter.Wallet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "80.00", got.BalanceEUR)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "-20.00", got.Entries[1].AmountEUR)

	rec = f.do(t, &user, http.MethodGet, "/api/v1/companies/"+companyID.String()+"/wallet.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".xlsx")
	assert.Equal(t, []byte("PK"), rec.Body.Bytes()[:2])
	f.wallet.AssertExpectations(t)
}

func TestServer_UploadDocumentRejectsDuplicates(t *testing.T) {
	f := newFixture(t)

	upload := func() *httptest.ResponseRecorder {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("source", "ikea"))
		part, err := w.CreateFormFile("file", "auftrag.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 order K-1001"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.token(t, f.dispatcher))
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, req)
		return rec
	}

	rec := upload()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, f.store.Documents(), 1)

	rec = upload()
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, errs.KindDuplicateDocument, decodeError(t, rec).Kind)
	assert.Len(t, f.store.Documents(), 1)
}

func TestServer_ReportOutcome(t *testing.T) {
	f := newFixture(t)
	companyID, user := f.company(t, "Montage Nord")

	rec := f.do(t, &f.dispatcher, http.MethodPost, "/api/v1/orders", newOrderBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created httpadapter.Created
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	orderPath := "/api/v1/orders/" + created.ID

	rec = f.do(t, &f.dispatcher, http.MethodPost, orderPath+"/assign",
		map[string]any{"company_id": companyID.String()})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	report := func(status string, withPhoto bool) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("status", status))
		require.NoError(t, w.WriteField("reason_category", "neutral"))
		require.NoError(t, w.WriteField("reason_text", "Kunde nicht angetroffen"))
		if withPhoto {
			part, err := w.CreateFormFile("photo", "tuer.jpg")
			require.NoError(t, err)
			_, err = part.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
			require.NoError(t, err)
		}
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, orderPath+"/outcome", &buf)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.token(t, user))
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, req)
		return rec
	}

	orderID := kernel.MustUUIDFromString(created.ID)

	t.Run("finished is not an outcome", func(t *testing.T) {
		rec := report("finished", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Equal(t, order.Assigned, f.store.Order(orderID).Status())
	})

	t.Run("photo is required", func(t *testing.T) {
		rec := report("storno", false)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Equal(t, order.Assigned, f.store.Order(orderID).Status())
	})

	t.Run("storno closes the order", func(t *testing.T) {
		rec := report("storno", true)
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		got := f.store.Order(orderID)
		assert.Equal(t, order.Storno, got.Status())
		require.NotNil(t, got.Reason())
		assert.Equal(t, order.ReasonNeutral, got.Reason().Category())
		assert.NotEmpty(t, got.Reason().PhotoRef())
	})
}
