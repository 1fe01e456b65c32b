package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bookclub/library-service/internal/errs"
	"github.com/bookclub/library-service/internal/handler"
	"github.com/bookclub/library-service/internal/model"
	"github.com/bookclub/library-service/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/bookclub/library-service/internal/handler/mocks"
)

const (
	testBookUid    = "f7cdc58f-2caf-4b15-9727-f89dcc629b27"
	testReaderUid  = "83575e12-7ce0-48ee-9931-51919ff3c9ee"
	testLendingUid = "0d3aab28-8f86-4a8e-9fc1-6dd5ea1a4f6a"
)

func newTestHandler(svc *service_mocks.MockLedgerService) *handler.Handler {
	log := zap.NewExample().Named("test")
	return handler.New(nil, nil, svc, nil, handler.NewNopPublisher(), log)
}

func TestHandler_CreateLending(t *testing.T) {
	t.Parallel()
	borrowDate := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	dueDate := borrowDate.Add(model.LoanPeriod)

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLedgerService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			body: fmt.Sprintf(`{"bookId":%q,"readerId":%q}`, testBookUid, testReaderUid),
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					CreateLending(context.Background(), model.CreateLendingRequest{
						BookUid:   testBookUid,
						ReaderUid: testReaderUid,
					}).
					Return(model.Lending{
						LendingUid: testLendingUid,
						Code:       "LN-2025-0001",
						BookUid:    testBookUid,
						ReaderUid:  testReaderUid,
						BorrowDate: borrowDate,
						DueDate:    dueDate,
						Status:     model.StatusBorrowed,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: fmt.Sprintf(`{"lendingUid":%q,"code":"LN-2025-0001","bookId":%q,"readerId":%q,"borrowDate":"2025-05-01T10:00:00Z","dueDate":"2025-05-15T10:00:00Z","status":"borrowed"}`,
					testLendingUid, testBookUid, testReaderUid),
			},
		},
		{
			name:         "err. bookId required",
			body:         fmt.Sprintf(`{"readerId":%q}`, testReaderUid),
			mockBehavior: func(r *service_mocks.MockLedgerService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'CreateLendingRequest.BookUid' Error:Field validation for 'BookUid' failed on the 'required' tag"}`,
			},
			wantErr: true,
		},
		{
			name: "err. book not found",
			body: fmt.Sprintf(`{"bookId":%q,"readerId":%q}`, testBookUid, testReaderUid),
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					CreateLending(context.Background(), gomock.Any()).
					Return(model.Lending{}, errors.Wrap(errs.ErrNotFound, "book"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"book: not found"}`,
			},
			wantErr: true,
		},
		{
			name: "err. no copies available",
			body: fmt.Sprintf(`{"bookId":%q,"readerId":%q}`, testBookUid, testReaderUid),
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					CreateLending(context.Background(), gomock.Any()).
					Return(model.Lending{}, errs.ErrNoCopies)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"no copies available"}`,
			},
			wantErr: true,
		},
		{
			name: "err. duplicate active loan",
			body: fmt.Sprintf(`{"bookId":%q,"readerId":%q}`, testBookUid, testReaderUid),
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					CreateLending(context.Background(), gomock.Any()).
					Return(model.Lending{}, errs.ErrDuplicateLoan)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"reader already has an active loan for this book"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLedgerService(c)
			tt.mockBehavior(svc)
			h := newTestHandler(svc)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/lendings", h.CreateLending)

			r := httptest.NewRequest(http.MethodPost, "/lendings", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ReturnLending(t *testing.T) {
	t.Parallel()
	borrowDate := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	returnDate := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLedgerService)

	var tests = []struct {
		name         string
		lendingUid   string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name:       "ok",
			lendingUid: testLendingUid,
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					ReturnLending(context.Background(), testLendingUid).
					Return(model.Lending{
						LendingUid: testLendingUid,
						Code:       "LN-2025-0001",
						BookUid:    testBookUid,
						ReaderUid:  testReaderUid,
						BorrowDate: borrowDate,
						DueDate:    borrowDate.Add(model.LoanPeriod),
						ReturnDate: &returnDate,
						Status:     model.StatusReturned,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`{"lendingUid":%q,"code":"LN-2025-0001","bookId":%q,"readerId":%q,"borrowDate":"2025-05-01T10:00:00Z","dueDate":"2025-05-15T10:00:00Z","returnDate":"2025-05-10T09:00:00Z","status":"returned"}`,
					testLendingUid, testBookUid, testReaderUid),
			},
		},
		{
			name:       "err. already returned",
			lendingUid: testLendingUid,
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					ReturnLending(context.Background(), testLendingUid).
					Return(model.Lending{}, errs.ErrAlreadyReturned)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"lending already returned"}`,
			},
			wantErr: true,
		},
		{
			name:       "err. not found",
			lendingUid: testLendingUid,
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					ReturnLending(context.Background(), testLendingUid).
					Return(model.Lending{}, errors.Wrap(errs.ErrNotFound, "lending"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"lending: not found"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLedgerService(c)
			tt.mockBehavior(svc)
			h := newTestHandler(svc)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PUT("/lendings/:lendingUid/return", h.ReturnLending)

			r := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/lendings/%s/return", tt.lendingUid), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListLendings(t *testing.T) {
	t.Parallel()
	borrowDate := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLedgerService)

	var tests = []struct {
		name         string
		target       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok. filtered by status",
			target: "/lendings?status=overdue",
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					ListLendings(context.Background(), model.LendingFilter{Status: model.StatusOverdue}).
					Return([]model.Lending{
						{
							LendingUid: testLendingUid,
							Code:       "LN-2025-0001",
							BookUid:    testBookUid,
							ReaderUid:  testReaderUid,
							BorrowDate: borrowDate,
							DueDate:    borrowDate.Add(model.LoanPeriod),
							Status:     model.StatusOverdue,
						},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: fmt.Sprintf(`[{"lendingUid":%q,"code":"LN-2025-0001","bookId":%q,"readerId":%q,"borrowDate":"2025-05-01T10:00:00Z","dueDate":"2025-05-15T10:00:00Z","status":"overdue"}]`,
					testLendingUid, testBookUid, testReaderUid),
			},
		},
		{
			name:   "ok. empty",
			target: "/lendings",
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					ListLendings(context.Background(), model.LendingFilter{}).
					Return([]model.Lending{}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[]`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLedgerService(c)
			tt.mockBehavior(svc)
			h := newTestHandler(svc)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/lendings", h.ListLendings)

			r := httptest.NewRequest(http.MethodGet, tt.target, http.NoBody)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_DeleteLending(t *testing.T) {
	t.Parallel()

	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLedgerService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					DeleteLending(context.Background(), testLendingUid).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: ``,
			},
		},
		{
			name: "err. not found",
			mockBehavior: func(r *service_mocks.MockLedgerService) {
				r.EXPECT().
					DeleteLending(context.Background(), testLendingUid).
					Return(errors.Wrap(errs.ErrNotFound, "lending"))
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"lending: not found"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockLedgerService(c)
			tt.mockBehavior(svc)
			h := newTestHandler(svc)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.DELETE("/lendings/:lendingUid", h.DeleteLending)

			r := httptest.NewRequest(http.MethodDelete, "/lendings/"+testLendingUid, http.NoBody)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
