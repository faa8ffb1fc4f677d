// Command seed populates the catalog tables (sectors, countries), a set
// of sample franchises and, in development, a default admin account.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"franquicias-latam.backend/internal/config"
	"franquicias-latam.backend/internal/infrastructure/models"
	"franquicias-latam.backend/pkg/crypto"
	"franquicias-latam.backend/pkg/utils"
)

var sectorData = []models.Sector{
	{Name: "Comida", Slug: "comida", Emoji: "\U0001F354"},
	{Name: "Retail", Slug: "retail", Emoji: "\U0001F457"},
	{Name: "Salud y Belleza", Slug: "salud-y-belleza", Emoji: "\U0001F4AA"},
	{Name: "Tecnologia", Slug: "tecnologia", Emoji: "\U0001F4BB"},
	{Name: "Educacion", Slug: "educacion", Emoji: "\U0001F393"},
	{Name: "Servicios", Slug: "servicios", Emoji: "\U0001F6E0️"},
}

var countryData = []models.Country{
	{Name: "Argentina", Code: "AR", PhoneCode: "+54", Flag: "\U0001F1E6\U0001F1F7"},
	{Name: "Bolivia", Code: "BO", PhoneCode: "+591", Flag: "\U0001F1E7\U0001F1F4"},
	{Name: "Brazil", Code: "BR", PhoneCode: "+55", Flag: "\U0001F1E7\U0001F1F7"},
	{Name: "Chile", Code: "CL", PhoneCode: "+56", Flag: "\U0001F1E8\U0001F1F1"},
	{Name: "Colombia", Code: "CO", PhoneCode: "+57", Flag: "\U0001F1E8\U0001F1F4"},
	{Name: "Costa Rica", Code: "CR", PhoneCode: "+506", Flag: "\U0001F1E8\U0001F1F7"},
	{Name: "Dominican Republic", Code: "DO", PhoneCode: "+1-809", Flag: "\U0001F1E9\U0001F1F4"},
	{Name: "Ecuador", Code: "EC", PhoneCode: "+593", Flag: "\U0001F1EA\U0001F1E8"},
	{Name: "El Salvador", Code: "SV", PhoneCode: "+503", Flag: "\U0001F1F8\U0001F1FB"},
	{Name: "Guatemala", Code: "GT", PhoneCode: "+502", Flag: "\U0001F1EC\U0001F1F9"},
	{Name: "Honduras", Code: "HN", PhoneCode: "+504", Flag: "\U0001F1ED\U0001F1F3"},
	{Name: "Mexico", Code: "MX", PhoneCode: "+52", Flag: "\U0001F1F2\U0001F1FD"},
	{Name: "Nicaragua", Code: "NI", PhoneCode: "+505", Flag: "\U0001F1F3\U0001F1EE"},
	{Name: "Panama", Code: "PA", PhoneCode: "+507", Flag: "\U0001F1F5\U0001F1E6"},
	{Name: "Paraguay", Code: "PY", PhoneCode: "+595", Flag: "\U0001F1F5\U0001F1FE"},
	{Name: "Peru", Code: "PE", PhoneCode: "+51", Flag: "\U0001F1F5\U0001F1EA"},
	{Name: "Uruguay", Code: "UY", PhoneCode: "+598", Flag: "\U0001F1FA\U0001F1FE"},
	{Name: "Venezuela", Code: "VE", PhoneCode: "+58", Flag: "\U0001F1FB\U0001F1EA"},
	{Name: "Spain", Code: "ES", PhoneCode: "+34", Flag: "\U0001F1EA\U0001F1F8"},
	{Name: "United States", Code: "US", PhoneCode: "+1", Flag: "\U0001F1FA\U0001F1F8"},
}

type franchiseSeed struct {
	Name          string
	Description   string
	InvestmentMin float64
	InvestmentMax float64
	SectorSlug    string
	ContactEmail  string
	Featured      bool
	CountryCodes  []string
}

var franchiseData = []franchiseSeed{
	{
		Name:          "Burger Master",
		Description:   "Cadena de hamburguesas premium con mas de 50 locales en Latinoamerica. Modelo de negocio probado con retorno de inversion en 18 meses.",
		InvestmentMin: 80000,
		InvestmentMax: 150000,
		SectorSlug:    "comida",
		ContactEmail:  "franquicias@burgermaster.co",
		Featured:      true,
		CountryCodes:  []string{"CO", "MX", "EC"},
	},
	{
		Name:          "TechHub Academy",
		Description:   "Centros de educacion tecnologica para jovenes y adultos. Cursos de programacion, IA y marketing digital.",
		InvestmentMin: 50000,
		InvestmentMax: 90000,
		SectorSlug:    "educacion",
		ContactEmail:  "expansion@techhub.edu",
		Featured:      true,
		CountryCodes:  []string{"CO", "MX", "AR", "CL", "PE"},
	},
	{
		Name:          "Bella Vita Spa",
		Description:   "Red de spas y centros de bienestar con servicios de belleza integral. Marca reconocida en el mercado premium.",
		InvestmentMin: 120000,
		InvestmentMax: 200000,
		SectorSlug:    "salud-y-belleza",
		ContactEmail:  "franquicias@bellavita.com",
		Featured:      false,
		CountryCodes:  []string{"CO", "MX", "CL"},
	},
	{
		Name:          "Fashion Box",
		Description:   "Tiendas de moda rapida con colecciones mensuales. Publico objetivo: mujeres 18-35 anios. Margenes sobre el 60%.",
		InvestmentMin: 100000,
		InvestmentMax: 180000,
		SectorSlug:    "retail",
		ContactEmail:  "info@fashionbox.la",
		Featured:      true,
		CountryCodes:  []string{"MX", "AR", "CL", "PE"},
	},
	{
		Name:          "CleanPro Services",
		Description:   "Servicios profesionales de limpieza para empresas y hogares. Modelo de baja inversion con recurrencia mensual.",
		InvestmentMin: 30000,
		InvestmentMax: 70000,
		SectorSlug:    "servicios",
		ContactEmail:  "franquicias@cleanpro.co",
		Featured:      false,
		CountryCodes:  []string{"CO", "EC", "PE"},
	},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.Database.URL()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Sector{},
		&models.Country{},
		&models.Franchise{},
		&models.FranchiseCountry{},
		&models.Lead{},
		&models.LeadSector{},
		&models.LeadFranchiseMatch{},
		&models.OtpVerification{},
		&models.AdminUser{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	sectorIDs, err := seedSectors(db)
	if err != nil {
		return err
	}
	countryIDs, err := seedCountries(db)
	if err != nil {
		return err
	}
	if err := seedFranchises(db, sectorIDs, countryIDs); err != nil {
		return err
	}
	if err := seedAdmin(db, cfg); err != nil {
		return err
	}

	log.Println("Seed completed")
	return nil
}

func seedSectors(db *gorm.DB) (map[string]models.Sector, error) {
	out := make(map[string]models.Sector, len(sectorData))
	for _, s := range sectorData {
		s.ID = utils.GenerateUUIDv7()
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&s).Error; err != nil {
			return nil, fmt.Errorf("seed sector %s: %w", s.Slug, err)
		}
		var row models.Sector
		if err := db.Where("slug = ?", s.Slug).First(&row).Error; err != nil {
			return nil, err
		}
		out[row.Slug] = row
	}
	log.Printf("Seeded %d sectors", len(out))
	return out, nil
}

func seedCountries(db *gorm.DB) (map[string]models.Country, error) {
	out := make(map[string]models.Country, len(countryData))
	for _, c := range countryData {
		c.ID = utils.GenerateUUIDv7()
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone_code", "flag"}),
		}).Create(&c).Error; err != nil {
			return nil, fmt.Errorf("seed country %s: %w", c.Code, err)
		}
		var row models.Country
		if err := db.Where("code = ?", c.Code).First(&row).Error; err != nil {
			return nil, err
		}
		out[row.Code] = row
	}
	log.Printf("Seeded %d countries", len(out))
	return out, nil
}

func seedFranchises(db *gorm.DB, sectors map[string]models.Sector, countries map[string]models.Country) error {
	for _, fd := range franchiseData {
		sector, ok := sectors[fd.SectorSlug]
		if !ok {
			return fmt.Errorf("unknown sector slug %q", fd.SectorSlug)
		}

		var franchise models.Franchise
		err := db.Where("name = ?", fd.Name).First(&franchise).Error
		switch {
		case err == nil:
			// keep existing row, refresh its attributes
		case err == gorm.ErrRecordNotFound:
			franchise = models.Franchise{ID: utils.GenerateUUIDv7(), Name: fd.Name}
		default:
			return err
		}

		contactEmail := fd.ContactEmail
		franchise.Description = fd.Description
		franchise.InvestmentMin = fd.InvestmentMin
		franchise.InvestmentMax = fd.InvestmentMax
		franchise.SectorID = sector.ID
		franchise.ContactEmail = &contactEmail
		franchise.Featured = fd.Featured
		franchise.Active = true

		if err := db.Save(&franchise).Error; err != nil {
			return fmt.Errorf("seed franchise %s: %w", fd.Name, err)
		}

		if err := db.Where("franchise_id = ?", franchise.ID).Delete(&models.FranchiseCountry{}).Error; err != nil {
			return err
		}
		for _, code := range fd.CountryCodes {
			country, ok := countries[code]
			if !ok {
				continue
			}
			link := models.FranchiseCountry{FranchiseID: franchise.ID, CountryID: country.ID}
			if err := db.Create(&link).Error; err != nil {
				return err
			}
		}
	}
	log.Printf("Seeded %d franchises", len(franchiseData))
	return nil
}

// seedAdmin creates the default admin credentials, but only when the
// environment explicitly allows it.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Server.IsProduction() && os.Getenv("ALLOW_DEV_SEED") != "true" {
		log.Println("Skipping default admin seed (set ALLOW_DEV_SEED=true to force)")
		return nil
	}

	const adminEmail = "admin@franquiciaslatam.co"
	var existing models.AdminUser
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := crypto.HashPassword("admin123")
	if err != nil {
		return err
	}
	admin := models.AdminUser{
		ID:           utils.GenerateUUIDv7(),
		Email:        adminEmail,
		Name:         "Admin",
		PasswordHash: hash,
		Role:         "ADMIN",
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Println("Seeded default admin user")
	return nil
}
