package ledger

import (
	"sync"

	"dapp_payroll/token"

	"github.com/holiman/uint256"
)

// Roles. DefaultAdminRole administers role membership, AdminRole owns
// the employee registry and payout, PauserRole owns the pause switch.
const (
	DefaultAdminRole = "DEFAULT_ADMIN_ROLE"
	AdminRole        = "ADMIN_ROLE"
	PauserRole       = "PAUSER_ROLE"
)

// Token is the capability set the ledger consumes from the fungible
// token. Deposit pulls with TransferFrom, payout pushes with
// TransferBatch; deny-list and token-pause failures surface as opaque
// errors from these calls.
type Token interface {
	BalanceOf(account string) *uint256.Int
	TransferFrom(spender, from, to string, amount *uint256.Int) error
	TransferBatch(from string, payments []token.Payment) error
}

type employee struct {
	salary  *uint256.Int
	bonus   *uint256.Int
	penalty *uint256.Int
}

// Payout is one employee's share of a disbursement run.
type Payout struct {
	Wallet string       `json:"wallet"`
	Amount *uint256.Int `json:"amount"`
}

// PayoutReport describes a completed disbursement run.
type PayoutReport struct {
	Payouts []Payout     `json:"payouts"`
	Total   *uint256.Int `json:"total"`
}

// Ledger is the authoritative payroll state: the employee registry,
// role assignments, the pause flag and the token funding balance. The
// whole aggregate sits behind one mutex so every mutating operation is
// indivisible with respect to concurrent callers, the way a contract
// call is on-chain. Caller identity is always an explicit argument,
// never ambient.
type Ledger struct {
	mu        sync.Mutex
	addr      string
	token     Token
	employees map[string]*employee
	order     []string
	roles     map[string]map[string]struct{}
	paused    bool
}

// New creates a ledger holding funds at addr. The default admin gets
// DefaultAdminRole and PauserRole; AdminRole is granted separately.
func New(tok Token, addr, defaultAdmin string) *Ledger {
	l := &Ledger{
		addr:      addr,
		token:     tok,
		employees: make(map[string]*employee),
		roles:     make(map[string]map[string]struct{}),
	}
	l.grantRole(DefaultAdminRole, defaultAdmin)
	l.grantRole(PauserRole, defaultAdmin)
	return l
}

// Address returns the wallet the ledger holds its funding under.
func (l *Ledger) Address() string { return l.addr }

// AddEmployee registers a wallet with the given salary and zero bonus
// and penalty.
func (l *Ledger) AddEmployee(caller, wallet string, salary *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, AdminRole); err != nil {
		return err
	}
	if l.paused {
		return ErrPaused
	}
	if _, ok := l.employees[wallet]; ok {
		return ErrEmployeeExists
	}
	if salary == nil || salary.IsZero() {
		return ErrZeroSalary
	}
	l.employees[wallet] = &employee{
		salary:  salary.Clone(),
		bonus:   uint256.NewInt(0),
		penalty: uint256.NewInt(0),
	}
	l.order = append(l.order, wallet)
	return nil
}

// RemoveEmployee hard-deletes a registered wallet.
func (l *Ledger) RemoveEmployee(caller, wallet string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, AdminRole); err != nil {
		return err
	}
	if l.paused {
		return ErrPaused
	}
	if _, ok := l.employees[wallet]; !ok {
		return ErrEmployeeNotFound
	}
	delete(l.employees, wallet)
	for i, w := range l.order {
		if w == wallet {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetEmployeeSalary overwrites the salary. The new value must be
// positive and must keep the employee profitable.
func (l *Ledger) SetEmployeeSalary(caller, wallet string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	emp, err := l.mutableEmployee(caller, wallet)
	if err != nil {
		return err
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroSalary
	}
	if _, err := payoutAmount(amount, emp.bonus, emp.penalty); err != nil {
		return err
	}
	emp.salary = amount.Clone()
	return nil
}

// SetEmployeeBonus overwrites the bonus, keeping the employee
// profitable.
func (l *Ledger) SetEmployeeBonus(caller, wallet string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	emp, err := l.mutableEmployee(caller, wallet)
	if err != nil {
		return err
	}
	if amount == nil {
		amount = uint256.NewInt(0)
	}
	if _, err := payoutAmount(emp.salary, amount, emp.penalty); err != nil {
		return err
	}
	emp.bonus = amount.Clone()
	return nil
}

// SetEmployeePenalty overwrites the penalty. A penalty reaching
// salary+bonus would zero out the payout and is rejected.
func (l *Ledger) SetEmployeePenalty(caller, wallet string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	emp, err := l.mutableEmployee(caller, wallet)
	if err != nil {
		return err
	}
	if amount == nil {
		amount = uint256.NewInt(0)
	}
	if _, err := payoutAmount(emp.salary, emp.bonus, amount); err != nil {
		return err
	}
	emp.penalty = amount.Clone()
	return nil
}

func (l *Ledger) GetEmployeeSalary(wallet string) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	emp, ok := l.employees[wallet]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return emp.salary.Clone(), nil
}

func (l *Ledger) GetEmployeeBonus(wallet string) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	emp, ok := l.employees[wallet]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return emp.bonus.Clone(), nil
}

func (l *Ledger) GetEmployeePenalty(wallet string) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	emp, ok := l.employees[wallet]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return emp.penalty.Clone(), nil
}

// CalculatePayoutAmount returns salary + bonus - penalty for a
// registered wallet.
func (l *Ledger) CalculatePayoutAmount(wallet string) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	emp, ok := l.employees[wallet]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return payoutAmount(emp.salary, emp.bonus, emp.penalty)
}

// EmployeesCount returns the current registry size.
func (l *Ledger) EmployeesCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// FundingBalance is the token balance held at the ledger's address.
// Deposits raise it; direct token transfers to the address count too.
func (l *Ledger) FundingBalance() *uint256.Int {
	return l.token.BalanceOf(l.addr)
}

// DepositTokens pulls amount from the caller into the ledger's
// custody. Requires a prior token approval for the ledger's address.
// Funding stays available while paused: it moves tokens into custody
// and touches no employee state.
func (l *Ledger) DepositTokens(caller string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.token.TransferFrom(l.addr, caller, l.addr, amount)
}

// PayAllSalaries disburses salary + bonus - penalty to every
// registered employee in registration order, then resets each paid
// employee's bonus and penalty to zero. The run is all-or-nothing: the
// payouts are computed and checked against the funding balance first,
// the token applies the batch atomically, and the resets happen only
// after the batch succeeds.
func (l *Ledger) PayAllSalaries(caller string) (*PayoutReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, AdminRole); err != nil {
		return nil, err
	}
	if l.paused {
		return nil, ErrPaused
	}

	total := uint256.NewInt(0)
	payouts := make([]Payout, 0, len(l.order))
	payments := make([]token.Payment, 0, len(l.order))
	for _, wallet := range l.order {
		emp := l.employees[wallet]
		amount, err := payoutAmount(emp.salary, emp.bonus, emp.penalty)
		if err != nil {
			return nil, err
		}
		var overflow bool
		total, overflow = total.AddOverflow(total, amount)
		if overflow {
			return nil, ErrAmountOverflow
		}
		payouts = append(payouts, Payout{Wallet: wallet, Amount: amount})
		payments = append(payments, token.Payment{To: wallet, Amount: amount})
	}
	if total.Cmp(l.token.BalanceOf(l.addr)) > 0 {
		return nil, ErrInsufficientBalance
	}

	if err := l.token.TransferBatch(l.addr, payments); err != nil {
		return nil, err
	}
	for _, wallet := range l.order {
		emp := l.employees[wallet]
		emp.bonus = uint256.NewInt(0)
		emp.penalty = uint256.NewInt(0)
	}
	return &PayoutReport{Payouts: payouts, Total: total}, nil
}

// Pause blocks employee-mutating operations and payout.
func (l *Ledger) Pause(caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, PauserRole); err != nil {
		return err
	}
	if l.paused {
		return ErrPaused
	}
	l.paused = true
	return nil
}

// Unpause restores normal operation without touching employee data.
func (l *Ledger) Unpause(caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, PauserRole); err != nil {
		return err
	}
	if !l.paused {
		return ErrNotPaused
	}
	l.paused = false
	return nil
}

func (l *Ledger) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

// GrantRole adds account to a role set. DefaultAdminRole only.
func (l *Ledger) GrantRole(caller, role, account string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, DefaultAdminRole); err != nil {
		return err
	}
	l.grantRole(role, account)
	return nil
}

// RevokeRole removes account from a role set. DefaultAdminRole only.
func (l *Ledger) RevokeRole(caller, role, account string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireRole(caller, DefaultAdminRole); err != nil {
		return err
	}
	if members, ok := l.roles[role]; ok {
		delete(members, account)
	}
	return nil
}

func (l *Ledger) HasRole(role, account string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.roles[role][account]
	return ok
}

func (l *Ledger) grantRole(role, account string) {
	members, ok := l.roles[role]
	if !ok {
		members = make(map[string]struct{})
		l.roles[role] = members
	}
	members[account] = struct{}{}
}

func (l *Ledger) requireRole(caller, role string) error {
	if _, ok := l.roles[role][caller]; !ok {
		return &AccessControlError{Account: caller, Role: role}
	}
	return nil
}

// mutableEmployee runs the shared guards for the field setters: role,
// pause, existence.
func (l *Ledger) mutableEmployee(caller, wallet string) (*employee, error) {
	if err := l.requireRole(caller, AdminRole); err != nil {
		return nil, err
	}
	if l.paused {
		return nil, ErrPaused
	}
	emp, ok := l.employees[wallet]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

// payoutAmount computes salary + bonus - penalty, rejecting any
// combination that would not leave a positive payout.
func payoutAmount(salary, bonus, penalty *uint256.Int) (*uint256.Int, error) {
	gross, overflow := new(uint256.Int).AddOverflow(salary, bonus)
	if overflow {
		return nil, ErrAmountOverflow
	}
	if penalty.Cmp(gross) >= 0 {
		return nil, ErrUnprofitable
	}
	return new(uint256.Int).Sub(gross, penalty), nil
}
