package config

import (
	"log"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/domain"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedLoanCategories(); err != nil {
		return err
	}
	if err := s.seedRankCompensations(); err != nil {
		return err
	}
	if err := s.seedSavingCategories(); err != nil {
		return err
	}
	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func dec(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func intPtr(i int) *int {
	return &i
}

// seedLoanCategories seeds the fixed loan products plus REGULAR, which
// carries no flat terms of its own
func (s *Seeder) seedLoanCategories() error {
	var count int64
	s.db.Model(&models.LoanCategory{}).Count(&count)
	if count > 0 {
		return nil
	}

	categories := []models.LoanCategory{
		{
			Name:         domain.LoanNameEmergency,
			Description:  "Quick funds needed for emergency cases",
			InterestRate: dec(10),
			MinAmount:    dec(50000),
			MaxAmount:    dec(500000),
			MinDuration:  intPtr(30),
			MaxDuration:  intPtr(90),
			IsActive:     true,
		},
		{
			Name:         domain.LoanNameHome,
			Description:  "Quick funds needed for home appliances",
			InterestRate: dec(5),
			MinAmount:    dec(50000),
			MaxAmount:    dec(500000),
			MinDuration:  intPtr(30),
			MaxDuration:  intPtr(90),
			IsActive:     true,
		},
		{
			Name:         domain.LoanNameCommodity,
			Description:  "Quick funds needed for needed commodity",
			InterestRate: dec(0),
			MinAmount:    dec(50000),
			MaxAmount:    dec(500000),
			MinDuration:  intPtr(30),
			MaxDuration:  intPtr(90),
			IsActive:     true,
		},
		{
			Name:         domain.LoanNameHousing,
			Description:  "Quick funds needed for house rents",
			InterestRate: dec(5),
			MinAmount:    dec(50000),
			MaxAmount:    dec(500000),
			MinDuration:  intPtr(30),
			MaxDuration:  intPtr(90),
			IsActive:     true,
		},
		{
			Name:     domain.LoanNameRegular,
			IsActive: true,
		},
	}

	return s.db.Create(&categories).Error
}

// regularTermSeed is one REGULAR duration bucket for a rank
type regularTermSeed struct {
	durationMonths int
	maxAmount      float64
	interestRate   float64
}

// rankSeed holds a rank's underwriting configuration
type rankSeed struct {
	name             domain.Rank
	minimumSaving    float64
	maxLoanDeduction float64
	lowestSalary     float64
	terms            []regularTermSeed
}

var rankSeeds = []rankSeed{
	{domain.RankACM, 5000, 72967, 104238.56, []regularTermSeed{
		{10, 650000, 5.0}, {20, 1000000, 6.0}, {30, 1100000, 10.0},
	}},
	{domain.RankLCPL, 5000, 78181.31, 111687.58, []regularTermSeed{
		{10, 700000, 5.0}, {20, 1100000, 6.0}, {30, 1300000, 10.0},
	}},
	{domain.RankCPL, 5000, 79816.98, 114024.25, []regularTermSeed{
		{10, 720000, 5.0}, {20, 1200000, 6.0}, {30, 1500000, 10.0},
	}},
	{domain.RankSGT, 5000, 94719.98, 135314.25, []regularTermSeed{
		{10, 850000, 5.0}, {20, 1500000, 6.0}, {30, 1800000, 10.0},
	}},
	{domain.RankFS, 5000, 101316.48, 144737.83, []regularTermSeed{
		{10, 900000, 5.0}, {20, 1600000, 6.0}, {30, 2000000, 10.0},
	}},
	{domain.RankWO, 5000, 113700.30, 162429, []regularTermSeed{
		{10, 1000000, 5.0}, {20, 2000000, 6.0}, {30, 2200000, 10.0},
	}},
	{domain.RankMWO, 5000, 170928.63, 244183.75, []regularTermSeed{
		{10, 1500000, 5.0}, {20, 3000000, 6.0}, {30, 4000000, 10.0},
	}},
	{domain.RankAWO, 5000, 184331.93, 263331.33, []regularTermSeed{
		{10, 1700000, 5.0}, {20, 3400000, 6.0}, {30, 4500000, 10.0},
	}},
	{domain.RankPltOffr, 5000, 185571.56, 265103.08, []regularTermSeed{
		{10, 1700000, 5.0}, {20, 3500000, 6.0}, {30, 4500000, 10.0},
	}},
	{domain.RankFgOffr, 5000, 199073.23, 284390.33, []regularTermSeed{
		{10, 1800000, 5.0}, {20, 4000000, 6.0}, {30, 5000000, 10.0},
	}},
	{domain.RankFltLt, 5000, 231202.59, 330289.42, []regularTermSeed{
		{10, 2000000, 5.0}, {20, 4500000, 6.0}, {30, 6000000, 10.0},
	}},
	{domain.RankSqnLdr, 5000, 244703.84, 349576.92, []regularTermSeed{
		{10, 2300000, 5.0}, {20, 5000000, 6.0}, {30, 6500000, 10.0},
	}},
	{domain.RankWgCdr, 5000, 280197.17, 400281.67, []regularTermSeed{
		{10, 2600000, 5.0}, {20, 5500000, 6.0}, {30, 7000000, 10.0},
	}},
	{domain.RankGpCapt, 5000, 327702.32, 468146.17, []regularTermSeed{
		{10, 3000000, 5.0}, {20, 6000000, 6.0}, {30, 7500000, 10.0},
	}},
	{domain.RankAirCdre, 5000, 622136.38, 888766.25, []regularTermSeed{
		{10, 6000000, 5.0}, {20, 10000000, 6.0}, {30, 12000000, 10.0},
	}},
	{domain.RankAVM, 5000, 1000271.79, 1343245.42, []regularTermSeed{
		{10, 9000000, 5.0}, {20, 15000000, 6.0}, {30, 20000000, 10.0},
	}},
}

// fixedCategoryMinimum is the minimum eligible amount for every fixed
// category across all ranks
var fixedCategoryMinimum = decimal.NewFromInt(500000)

// seedRankCompensations seeds every rank with its REGULAR duration buckets
// and fixed-category eligibility minimums
func (s *Seeder) seedRankCompensations() error {
	var count int64
	s.db.Model(&models.RankCompensation{}).Count(&count)
	if count > 0 {
		return nil
	}

	var regular models.LoanCategory
	if err := s.db.First(&regular, "name = ?", domain.LoanNameRegular).Error; err != nil {
		return err
	}

	var fixedCategories []models.LoanCategory
	if err := s.db.Where("name <> ?", domain.LoanNameRegular).Find(&fixedCategories).Error; err != nil {
		return err
	}

	for _, seed := range rankSeeds {
		rc := models.RankCompensation{
			Name:                 seed.name,
			MinimumSavingAmount:  decimal.NewFromFloat(seed.minimumSaving),
			MaximumLoanDeduction: decimal.NewFromFloat(seed.maxLoanDeduction),
			LowestSalaryRange:    decimal.NewFromFloat(seed.lowestSalary),
		}

		for _, term := range seed.terms {
			rc.LoanTerms = append(rc.LoanTerms, models.RegularLoanTerm{
				LoanCategoryID: regular.ID,
				DurationMonths: term.durationMonths,
				MaximumAmount:  decimal.NewFromFloat(term.maxAmount),
				InterestRate:   decimal.NewFromFloat(term.interestRate),
			})
		}

		for _, category := range fixedCategories {
			rc.EligibleCategories = append(rc.EligibleCategories, models.RankCategoryEligibility{
				LoanCategoryID:    category.ID,
				MinEligibleAmount: fixedCategoryMinimum,
			})
		}

		if err := s.db.Create(&rc).Error; err != nil {
			return err
		}
	}

	return nil
}

// seedSavingCategories seeds the two savings products
func (s *Seeder) seedSavingCategories() error {
	var count int64
	s.db.Model(&models.SavingCategory{}).Count(&count)
	if count > 0 {
		return nil
	}

	categories := []models.SavingCategory{
		{
			Name:         "Quick Savings",
			Type:         domain.SavingTypeQuick,
			InterestRate: decimal.Zero,
		},
		{
			Name:         "Cooperative Savings",
			Type:         domain.SavingTypeCooperative,
			InterestRate: decimal.NewFromFloat(5.0),
		},
	}

	return s.db.Create(&categories).Error
}

// seedAdminUser seeds a default admin for development. In production the
// admin is created through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    "admin@cooplink.ng",
		FullName: "System Administrator",
		Password: hashedPassword,
		Role:     domain.RoleAdmin,
		IsActive: true,
	}
	return s.db.Create(admin).Error
}
