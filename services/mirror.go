package services

import (
	"time"

	"dapp_payroll/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MirrorService duplicates ledger state into the database for display.
// It is written to only after the corresponding ledger call succeeds
// and is never read back into the ledger; a failed mirror write leaves
// the cache stale, not the ledger wrong.
type MirrorService struct {
	DB *gorm.DB
}

func NewMirrorService(db *gorm.DB) *MirrorService {
	return &MirrorService{DB: db}
}

func (s *MirrorService) CreateEmployee(fullName, wallet, salary string) (*models.Employee, error) {
	employee := models.Employee{
		ID:            uuid.New().String(),
		FullName:      fullName,
		WalletAddress: wallet,
		Salary:        salary,
		Bonus:         "0",
		Penalty:       "0",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.DB.Create(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *MirrorService) ListEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.DB.Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *MirrorService) UpdateSalary(wallet, amount string) error {
	return s.updateField(wallet, "salary", amount)
}

func (s *MirrorService) UpdateBonus(wallet, amount string) error {
	return s.updateField(wallet, "bonus", amount)
}

func (s *MirrorService) UpdatePenalty(wallet, amount string) error {
	return s.updateField(wallet, "penalty", amount)
}

// ResetBonusesAndPenalties zeroes bonus and penalty for the given
// wallets, matching the post-payout registry state.
func (s *MirrorService) ResetBonusesAndPenalties(wallets []string) error {
	if len(wallets) == 0 {
		return nil
	}
	return s.DB.Model(&models.Employee{}).
		Where("wallet_address IN ?", wallets).
		Updates(map[string]interface{}{"bonus": "0", "penalty": "0", "updated_at": time.Now()}).Error
}

func (s *MirrorService) DeleteEmployee(wallet string) error {
	return s.DB.Where("wallet_address = ?", wallet).Delete(&models.Employee{}).Error
}

func (s *MirrorService) RecordTransaction(date time.Time, amount, hash string) (*models.Transaction, error) {
	tx := models.Transaction{
		ID:        uuid.New().String(),
		Date:      date,
		Amount:    amount,
		Hash:      hash,
		CreatedAt: time.Now(),
	}
	if err := s.DB.Create(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *MirrorService) ListTransactions() ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.DB.Order("date DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *MirrorService) updateField(wallet, field, amount string) error {
	return s.DB.Model(&models.Employee{}).
		Where("wallet_address = ?", wallet).
		Updates(map[string]interface{}{field: amount, "updated_at": time.Now()}).Error
}
