// seed puebla el almacén configurado con items de catálogo y una credencial de operador.
//
// Uso:
//
//	go run ./cmd/seed [-file catalogo.csv] [-encoding latin1] [-username admin -password secreta123]
//
// Sin -file se cargan unos items de demostración. Usa la misma configuración que la API
// (STORE_DRIVER, SQLITE_PATH, DATABASE_URL, TABLE_*).
package main

import (
	"context"
	"flag"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/epharma-api/internal/application/auth"
	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/application/usecase"
	"github.com/jhoicas/epharma-api/internal/infrastructure/catalog"
	"github.com/jhoicas/epharma-api/internal/infrastructure/storage"
	"github.com/jhoicas/epharma-api/pkg/config"
	"github.com/jhoicas/epharma-api/pkg/logger"
)

func main() {
	var (
		file     string
		encoding string
		username string
		password string
	)
	flag.StringVar(&file, "file", "", "CSV de catálogo (cabecera: name,brand,cost_price,selling_price[,id,quantity,expiry_date,barcode])")
	flag.StringVar(&encoding, "encoding", catalog.EncodingUTF8, "utf-8 | latin1 | windows-1252")
	flag.StringVar(&username, "username", "admin", "usuario operador a crear")
	flag.StringVar(&password, "password", "", "contraseña del operador (vacío = no crear)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer backend.Close()

	items := demoItems()
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("abrir catálogo")
		}
		items, err = catalog.ParseItems(f, encoding)
		_ = f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("leer catálogo")
		}
	}

	itemUC := usecase.NewInventoryItemUseCase(backend.Items, backend.TxRunner)
	ids, err := itemUC.CreateBulk(ctx, items)
	if err != nil {
		log.Fatal().Err(err).Int("items", len(items)).Msg("cargar items (ningún item fue creado)")
	}
	log.Info().Int("items", len(ids)).Msg("items cargados")

	if password == "" {
		return
	}
	authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	exists, err := authUC.UserExists(ctx, username)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar operador")
	}
	if exists {
		log.Info().Str("username", username).Msg("el operador ya existe")
		return
	}
	user, err := authUC.RegisterUser(ctx, dto.RegisterRequest{Username: username, Password: password})
	if err != nil {
		log.Fatal().Err(err).Str("username", username).Msg("crear operador")
	}
	log.Info().Int64("id", user.ID).Str("username", user.Username).Msg("operador creado")
}

func demoItems() []dto.CreateItemRequest {
	date := func(s string) *string { return &s }
	return []dto.CreateItemRequest{
		{Name: "Acetaminofén 500mg x 100", Brand: "Genfar", Quantity: 40, CostPrice: decimal.NewFromInt(4200), SellingPrice: decimal.NewFromInt(6500), ExpiryDate: date("2027-08-31")},
		{Name: "Ibuprofeno 400mg x 50", Brand: "MK", Quantity: 25, CostPrice: decimal.NewFromInt(5100), SellingPrice: decimal.NewFromInt(7900), ExpiryDate: date("2027-03-31")},
		{Name: "Loratadina 10mg x 10", Brand: "Tecnoquímicas", Quantity: 30, CostPrice: decimal.NewFromInt(2300), SellingPrice: decimal.NewFromInt(3800), ExpiryDate: date("2026-12-31")},
		{Name: "Amoxicilina 500mg x 50", Brand: "La Santé", Quantity: 12, CostPrice: decimal.NewFromInt(15800), SellingPrice: decimal.NewFromInt(22500), ExpiryDate: date("2027-01-31")},
		{Name: "Suero oral 500ml", Brand: "Pedialyte", Quantity: 18, CostPrice: decimal.RequireFromString("8450.50"), SellingPrice: decimal.NewFromInt(11900), ExpiryDate: date("2028-02-29")},
	}
}
