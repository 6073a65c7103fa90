package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweldox/payroll-backend-go/internal/domain/attendance"
	"github.com/sweldox/payroll-backend-go/internal/domain/employee"
	"github.com/sweldox/payroll-backend-go/internal/domain/payroll"
	"github.com/sweldox/payroll-backend-go/internal/domain/payrollconfig"
	"github.com/sweldox/payroll-backend-go/internal/domain/user"
	"github.com/sweldox/payroll-backend-go/internal/pkg/validator"
	configservice "github.com/sweldox/payroll-backend-go/internal/service/payrollconfig"
)

type fakePayrollRepo struct {
	mu       sync.Mutex
	payrolls map[string]payroll.Payroll
	nextID   int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{payrolls: make(map[string]payroll.Payroll)}
}

func periodKey(employeeID string, start, end *time.Time) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	}
	return employeeID + "/" + format(start) + "/" + format(end)
}

func (f *fakePayrollRepo) Create(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := periodKey(p.EmployeeID, p.PeriodStart, p.PeriodEnd)
	for _, existing := range f.payrolls {
		if periodKey(existing.EmployeeID, existing.PeriodStart, existing.PeriodEnd) == key {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
	}

	f.nextID++
	p.ID = fmt.Sprintf("payroll-%d", f.nextID)
	p.CreatedAt = time.Now()
	f.payrolls[p.ID] = p
	return p, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Payroll, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.payrolls[id]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (f *fakePayrollRepo) ExistsForPeriod(_ context.Context, employeeID string, periodStart, periodEnd time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := periodKey(employeeID, &periodStart, &periodEnd)
	for _, p := range f.payrolls {
		if periodKey(p.EmployeeID, p.PeriodStart, p.PeriodEnd) == key {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayrollRepo) List(_ context.Context, _ payroll.Filter) ([]payroll.Payroll, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []payroll.Payroll
	for _, p := range f.payrolls {
		result = append(result, p)
	}
	return result, int64(len(result)), nil
}

func (f *fakePayrollRepo) ListByEmployee(_ context.Context, employeeID string, _ payroll.Filter) ([]payroll.Payroll, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []payroll.Payroll
	for _, p := range f.payrolls {
		if p.EmployeeID == employeeID {
			result = append(result, p)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakePayrollRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payrolls)
}

// fakeTx runs the unit of work without a database.
type fakeTx struct {
	calls atomic.Int32
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls.Add(1)
	return fn(ctx)
}

// fakeConfigRepo serves one fixed snapshot. Only the effective-date
// lookups are implemented; the administration methods are unused here.
type fakeConfigRepo struct {
	payrollconfig.Repository
	snapshot payrollconfig.Snapshot
	missing  bool
	lookups  atomic.Int32
}

func (f *fakeConfigRepo) GetSocialInsuranceByDate(_ context.Context, date time.Time) (payrollconfig.SocialInsuranceConfig, error) {
	f.lookups.Add(1)
	if f.missing {
		return payrollconfig.SocialInsuranceConfig{}, &payrollconfig.ConfigNotFoundError{Kind: payrollconfig.KindSocialInsurance, Date: date}
	}
	return f.snapshot.SocialInsurance, nil
}

func (f *fakeConfigRepo) GetHealthInsuranceByDate(_ context.Context, _ time.Time) (payrollconfig.HealthInsuranceConfig, error) {
	return f.snapshot.HealthInsurance, nil
}

func (f *fakeConfigRepo) GetHousingFundByDate(_ context.Context, _ time.Time) (payrollconfig.HousingFundConfig, error) {
	return f.snapshot.HousingFund, nil
}

func (f *fakeConfigRepo) GetTaxBracketsByDate(_ context.Context, _ time.Time) ([]payrollconfig.TaxBracket, error) {
	return f.snapshot.TaxBrackets, nil
}

type serviceFixture struct {
	service    *Service
	repo       *fakePayrollRepo
	tx         *fakeTx
	configRepo *fakeConfigRepo
}

func newServiceFixture(employees *fakeEmployeeProvider, attendances *fakeAttendanceProvider, snapshot payrollconfig.Snapshot) *serviceFixture {
	repo := newFakePayrollRepo()
	tx := &fakeTx{}
	configRepo := &fakeConfigRepo{snapshot: snapshot}

	svc := NewService(
		tx,
		repo,
		employees,
		NewBuilder(employees, attendances),
		configservice.NewResolver(configRepo),
		user.NewRoleAuthorizer(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		4,
	)

	return &serviceFixture{service: svc, repo: repo, tx: tx, configRepo: configRepo}
}

// Attendance spanning exactly the requested period so the persisted
// bounds match the request.
func fullPeriodAttendance() map[string][]attendance.Attendance {
	return map[string][]attendance.Attendance{
		"emp-1": {
			{Date: date("2024-06-01"), TotalHours: dec("8"), OvertimeHours: dec("0")},
			{Date: date("2024-06-15"), TotalHours: dec("8"), OvertimeHours: dec("0")},
		},
	}
}

func singleEmployee() *fakeEmployeeProvider {
	return &fakeEmployeeProvider{
		employees: map[string]employee.Employee{
			"emp-1": {ID: "emp-1", BasicSalary: dec("20000"), HourlyRate: dec("125")},
		},
		activeIDs: []string{"emp-1"},
	}
}

func createRequest(employeeID string) payroll.CreatePayrollRequest {
	req := payroll.CreatePayrollRequest{
		PeriodStartDate: "2024-06-01",
		PeriodEndDate:   "2024-06-15",
		PayDate:         "2024-06-15",
	}
	if employeeID != "" {
		req.EmployeeID = &employeeID
	}
	return req
}

func TestCreatePayroll(t *testing.T) {
	t.Run("creates and persists one payroll", func(t *testing.T) {
		f := newServiceFixture(singleEmployee(), &fakeAttendanceProvider{records: fullPeriodAttendance()}, testSnapshot())

		result, err := f.service.CreatePayroll(context.Background(), createRequest("emp-1"))
		require.NoError(t, err)

		assert.NotEmpty(t, result.ID)
		assert.Equal(t, "emp-1", result.EmployeeID)
		assert.Equal(t, 2, result.DaysWorked)
		assert.Len(t, result.Deductions, 4)
		assert.Equal(t, 1, f.repo.count())
		assert.Equal(t, int32(1), f.tx.calls.Load())
	})

	t.Run("second identical request conflicts", func(t *testing.T) {
		f := newServiceFixture(singleEmployee(), &fakeAttendanceProvider{records: fullPeriodAttendance()}, testSnapshot())

		_, err := f.service.CreatePayroll(context.Background(), createRequest("emp-1"))
		require.NoError(t, err)

		_, err = f.service.CreatePayroll(context.Background(), createRequest("emp-1"))
		assert.ErrorIs(t, err, payroll.ErrPayrollAlreadyExists)
		assert.Equal(t, 1, f.repo.count())
	})

	t.Run("missing employee id is rejected", func(t *testing.T) {
		f := newServiceFixture(singleEmployee(), &fakeAttendanceProvider{}, testSnapshot())

		_, err := f.service.CreatePayroll(context.Background(), createRequest(""))

		var validationErrs validator.ValidationErrors
		require.True(t, errors.As(err, &validationErrs))
		assert.Contains(t, validationErrs.ToMap(), "employee_id")
	})

	t.Run("invalid dates are rejected", func(t *testing.T) {
		f := newServiceFixture(singleEmployee(), &fakeAttendanceProvider{}, testSnapshot())

		req := createRequest("emp-1")
		req.PeriodEndDate = "not-a-date"

		_, err := f.service.CreatePayroll(context.Background(), req)

		var validationErrs validator.ValidationErrors
		require.True(t, errors.As(err, &validationErrs))
	})

	t.Run("missing configuration refuses creation", func(t *testing.T) {
		f := newServiceFixture(singleEmployee(), &fakeAttendanceProvider{records: fullPeriodAttendance()}, testSnapshot())
		f.configRepo.missing = true

		_, err := f.service.CreatePayroll(context.Background(), createRequest("emp-1"))

		var configErr *payrollconfig.ConfigNotFoundError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, payrollconfig.KindSocialInsurance, configErr.Kind)
		assert.Equal(t, 0, f.repo.count())
	})
}

func TestCreatePayrollBatch(t *testing.T) {
	// boundedSnapshot rejects salaries above 30000 at the social bracket.
	boundedSnapshot := func() payrollconfig.Snapshot {
		s := testSnapshot()
		s.SocialInsurance.Brackets = []payrollconfig.SalaryBracket{
			{MinIncome: dec("0"), MaxIncome: decPtr("30000"), ReferenceAmount: dec("10000")},
		}
		return s
	}

	t.Run("one failure does not roll back another's payroll", func(t *testing.T) {
		employees := &fakeEmployeeProvider{
			employees: map[string]employee.Employee{
				"emp-ok":  {ID: "emp-ok", BasicSalary: dec("20000"), HourlyRate: dec("125")},
				"emp-bad": {ID: "emp-bad", BasicSalary: dec("90000"), HourlyRate: dec("500")},
			},
			activeIDs: []string{"emp-ok", "emp-bad"},
		}
		attendances := &fakeAttendanceProvider{records: map[string][]attendance.Attendance{
			"emp-ok":  {{Date: date("2024-06-03"), TotalHours: dec("8"), OvertimeHours: dec("0")}},
			"emp-bad": {{Date: date("2024-06-03"), TotalHours: dec("8"), OvertimeHours: dec("0")}},
		}}
		f := newServiceFixture(employees, attendances, boundedSnapshot())

		result, err := f.service.CreatePayrollBatch(context.Background(), createRequest(""))
		require.NoError(t, err)

		assert.Equal(t, 1, result.RecordsCreated)
		assert.Equal(t, 1, result.RecordsFailed)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "emp-bad", result.Failures[0].EmployeeID)
		assert.Contains(t, result.Failures[0].Reason, "bracket")
		assert.Equal(t, 1, f.repo.count())
	})

	t.Run("employees with existing payrolls are counted as failures", func(t *testing.T) {
		f := newServiceFixture(singleEmployee(), &fakeAttendanceProvider{records: fullPeriodAttendance()}, testSnapshot())

		_, err := f.service.CreatePayroll(context.Background(), createRequest("emp-1"))
		require.NoError(t, err)

		_, err = f.service.CreatePayrollBatch(context.Background(), createRequest(""))
		assert.ErrorIs(t, err, payroll.ErrNoEmployeesProcessed)
		assert.Equal(t, 1, f.repo.count())
	})

	t.Run("all employees failing is an error", func(t *testing.T) {
		employees := &fakeEmployeeProvider{
			employees: map[string]employee.Employee{
				"emp-bad": {ID: "emp-bad", BasicSalary: dec("90000"), HourlyRate: dec("500")},
			},
			activeIDs: []string{"emp-bad"},
		}
		f := newServiceFixture(employees, &fakeAttendanceProvider{}, boundedSnapshot())

		_, err := f.service.CreatePayrollBatch(context.Background(), createRequest(""))
		assert.ErrorIs(t, err, payroll.ErrNoEmployeesProcessed)
	})

	t.Run("no active employees is an empty batch", func(t *testing.T) {
		employees := &fakeEmployeeProvider{employees: map[string]employee.Employee{}, activeIDs: nil}
		f := newServiceFixture(employees, &fakeAttendanceProvider{}, testSnapshot())

		result, err := f.service.CreatePayrollBatch(context.Background(), createRequest(""))
		require.NoError(t, err)
		assert.Equal(t, 0, result.RecordsCreated)
		assert.Equal(t, 0, result.RecordsFailed)
	})

	t.Run("configuration is resolved once per batch", func(t *testing.T) {
		employees := &fakeEmployeeProvider{
			employees: map[string]employee.Employee{
				"emp-1": {ID: "emp-1", BasicSalary: dec("20000"), HourlyRate: dec("125")},
				"emp-2": {ID: "emp-2", BasicSalary: dec("21000"), HourlyRate: dec("130")},
				"emp-3": {ID: "emp-3", BasicSalary: dec("22000"), HourlyRate: dec("135")},
			},
			activeIDs: []string{"emp-1", "emp-2", "emp-3"},
		}
		attendances := &fakeAttendanceProvider{records: map[string][]attendance.Attendance{
			"emp-1": {{Date: date("2024-06-03"), TotalHours: dec("8"), OvertimeHours: dec("0")}},
			"emp-2": {{Date: date("2024-06-04"), TotalHours: dec("8"), OvertimeHours: dec("0")}},
			"emp-3": {{Date: date("2024-06-05"), TotalHours: dec("8"), OvertimeHours: dec("0")}},
		}}
		f := newServiceFixture(employees, attendances, testSnapshot())

		result, err := f.service.CreatePayrollBatch(context.Background(), createRequest(""))
		require.NoError(t, err)

		assert.Equal(t, 3, result.RecordsCreated)
		assert.Equal(t, int32(1), f.configRepo.lookups.Load())
	})
}

func TestReadAccess(t *testing.T) {
	setup := func(t *testing.T) (*serviceFixture, string) {
		f := newServiceFixture(singleEmployee(), &fakeAttendanceProvider{records: fullPeriodAttendance()}, testSnapshot())
		created, err := f.service.CreatePayroll(context.Background(), createRequest("emp-1"))
		require.NoError(t, err)
		return f, created.ID
	}

	payrollViewer := user.Viewer{UserID: "u-payroll", Role: user.RolePayroll}
	owner := user.Viewer{UserID: "u-owner", EmployeeID: "emp-1", Role: user.RoleEmployee}
	stranger := user.Viewer{UserID: "u-other", EmployeeID: "emp-2", Role: user.RoleEmployee}

	t.Run("payroll role reads any record", func(t *testing.T) {
		f, id := setup(t)
		_, err := f.service.GetPayrollByID(context.Background(), payrollViewer, id)
		assert.NoError(t, err)
	})

	t.Run("owner reads own record", func(t *testing.T) {
		f, id := setup(t)
		_, err := f.service.GetPayrollByID(context.Background(), owner, id)
		assert.NoError(t, err)
	})

	t.Run("another employee is forbidden", func(t *testing.T) {
		f, id := setup(t)
		_, err := f.service.GetPayrollByID(context.Background(), stranger, id)
		assert.ErrorIs(t, err, payroll.ErrForbidden)
	})

	t.Run("listing all payrolls requires the payroll role", func(t *testing.T) {
		f, _ := setup(t)

		_, err := f.service.GetAllPayroll(context.Background(), owner, payroll.Filter{Limit: 10})
		assert.ErrorIs(t, err, user.ErrPayrollAccessRequired)

		result, err := f.service.GetAllPayroll(context.Background(), payrollViewer, payroll.Filter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.TotalCount)
	})

	t.Run("employee listing is payroll role or self", func(t *testing.T) {
		f, _ := setup(t)

		_, err := f.service.GetAllEmployeePayroll(context.Background(), stranger, "emp-1", payroll.Filter{Limit: 10})
		assert.ErrorIs(t, err, payroll.ErrForbidden)

		result, err := f.service.GetAllEmployeePayroll(context.Background(), owner, "emp-1", payroll.Filter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.TotalCount)
	})
}
