package token

import (
	"sync"

	"github.com/holiman/uint256"
)

const Decimals = 18

// Payment is a single leg of a batch transfer.
type Payment struct {
	To     string
	Amount *uint256.Int
}

// Token is an in-process fungible token: transferable balances with
// allowances, owner-gated mint/burn, a pause switch and a deny-list
// that blocks transfers to or from flagged accounts. Accounts are
// address strings. Every mutating call takes the caller explicitly.
type Token struct {
	mu          sync.RWMutex
	name        string
	symbol      string
	owner       string
	paused      bool
	totalSupply *uint256.Int
	balances    map[string]*uint256.Int
	allowances  map[string]map[string]*uint256.Int
	denied      map[string]struct{}
}

// New creates a token and mints the initial supply to the owner.
func New(name, symbol, owner string, initialSupply *uint256.Int) *Token {
	t := &Token{
		name:        name,
		symbol:      symbol,
		owner:       owner,
		totalSupply: initialSupply.Clone(),
		balances:    make(map[string]*uint256.Int),
		allowances:  make(map[string]map[string]*uint256.Int),
		denied:      make(map[string]struct{}),
	}
	t.balances[owner] = initialSupply.Clone()
	return t
}

func (t *Token) Name() string   { return t.name }
func (t *Token) Symbol() string { return t.symbol }
func (t *Token) Owner() string  { return t.owner }

func (t *Token) TotalSupply() *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totalSupply.Clone()
}

func (t *Token) BalanceOf(account string) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.balanceOf(account).Clone()
}

func (t *Token) Allowance(owner, spender string) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if spenders, ok := t.allowances[owner]; ok {
		if amount, ok := spenders[spender]; ok {
			return amount.Clone()
		}
	}
	return uint256.NewInt(0)
}

func (t *Token) Paused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.paused
}

func (t *Token) IsDenied(account string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.denied[account]
	return ok
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkTransfer(from, to, amount); err != nil {
		return err
	}
	t.move(from, to, amount)
	return nil
}

// Approve sets spender's allowance over owner's balance.
func (t *Token) Approve(owner, spender string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.paused {
		return ErrPaused
	}
	spenders, ok := t.allowances[owner]
	if !ok {
		spenders = make(map[string]*uint256.Int)
		t.allowances[owner] = spenders
	}
	spenders[spender] = amount.Clone()
	return nil
}

// TransferFrom moves amount from one account to another on the
// strength of a prior approval, decrementing the allowance.
func (t *Token) TransferFrom(spender, from, to string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	allowance := uint256.NewInt(0)
	if spenders, ok := t.allowances[from]; ok {
		if a, ok := spenders[spender]; ok {
			allowance = a
		}
	}
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := t.checkTransfer(from, to, amount); err != nil {
		return err
	}
	allowance.Sub(allowance, amount)
	t.move(from, to, amount)
	return nil
}

// TransferBatch moves every payment from a single sender, or nothing.
// All legs are validated against pause, deny-list and the sender's
// aggregate balance before the first one is applied.
func (t *Token) TransferBatch(from string, payments []Payment) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := uint256.NewInt(0)
	for _, p := range payments {
		if err := t.checkTransfer(from, p.To, p.Amount); err != nil {
			return err
		}
		var overflow bool
		total, overflow = total.AddOverflow(total, p.Amount)
		if overflow {
			return ErrAmountOverflow
		}
	}
	if t.balanceOf(from).Cmp(total) < 0 {
		return ErrInsufficientBalance
	}
	for _, p := range payments {
		t.move(from, p.To, p.Amount)
	}
	return nil
}

// Mint creates new tokens into an account. Owner only.
func (t *Token) Mint(caller, to string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrNotOwner
	}
	if t.paused {
		return ErrPaused
	}
	supply, overflow := new(uint256.Int).AddOverflow(t.totalSupply, amount)
	if overflow {
		return ErrAmountOverflow
	}
	t.totalSupply = supply
	balance := t.balanceOf(to)
	t.balances[to] = balance.Add(balance, amount)
	return nil
}

// Burn destroys tokens from an account. Owner only.
func (t *Token) Burn(caller, from string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrNotOwner
	}
	if t.paused {
		return ErrPaused
	}
	balance := t.balanceOf(from)
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	t.balances[from] = balance.Sub(balance, amount)
	t.totalSupply.Sub(t.totalSupply, amount)
	return nil
}

// Pause blocks transfers, mints and burns until Unpause. Owner only.
func (t *Token) Pause(caller string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrNotOwner
	}
	if t.paused {
		return ErrPaused
	}
	t.paused = true
	return nil
}

func (t *Token) Unpause(caller string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrNotOwner
	}
	if !t.paused {
		return ErrNotPaused
	}
	t.paused = false
	return nil
}

// Deny adds an account to the deny-list. Owner only.
func (t *Token) Deny(caller, account string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrNotOwner
	}
	t.denied[account] = struct{}{}
	return nil
}

// Allow removes an account from the deny-list. Owner only.
func (t *Token) Allow(caller, account string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrNotOwner
	}
	delete(t.denied, account)
	return nil
}

// balanceOf returns the live balance entry, or a detached zero for an
// untouched account. Callers must hold the lock and clone before
// returning the value outside the package.
func (t *Token) balanceOf(account string) *uint256.Int {
	if balance, ok := t.balances[account]; ok {
		return balance
	}
	return uint256.NewInt(0)
}

func (t *Token) checkTransfer(from, to string, amount *uint256.Int) error {
	if t.paused {
		return ErrPaused
	}
	if _, ok := t.denied[from]; ok {
		return ErrDenied
	}
	if _, ok := t.denied[to]; ok {
		return ErrDenied
	}
	if t.balanceOf(from).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (t *Token) move(from, to string, amount *uint256.Int) {
	fromBalance := t.balanceOf(from)
	t.balances[from] = fromBalance.Sub(fromBalance, amount)
	toBalance := t.balanceOf(to)
	t.balances[to] = toBalance.Add(toBalance, amount)
}
