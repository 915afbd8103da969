package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"gorm.io/gorm"

	"kcstudio/storefront/internal/app/config"
	"kcstudio/storefront/internal/app/domains/entity/etadmin"
	"kcstudio/storefront/internal/app/domains/modules/mdadmin"
	"kcstudio/storefront/internal/app/domains/modules/mdnotify"
	"kcstudio/storefront/internal/app/domains/modules/mdorder"
	"kcstudio/storefront/internal/app/domains/modules/mdproduct"
	"kcstudio/storefront/internal/app/domains/repo/rpadmin"
	"kcstudio/storefront/internal/app/domains/repo/rporder"
	"kcstudio/storefront/internal/app/domains/repo/rpproduct"
	"kcstudio/storefront/internal/app/domains/repo/rptx"
	"kcstudio/storefront/internal/app/domains/services/svadmin"
	"kcstudio/storefront/internal/app/domains/services/svproduct"
	"kcstudio/storefront/internal/app/infra/persistence/mysql"
	"kcstudio/storefront/internal/app/pkg/authx"
	"kcstudio/storefront/internal/app/pkg/idgen"
	"kcstudio/storefront/internal/app/pkg/logger"
)

const usage = `usage: admintool <command> [flags]

commands:
  hash-password  -password <plain>
  create-admin   -username <name> -password <plain> [-email <email>] [-full-name <name>]
  list-admins
  list-products
  migrate`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	// hash-password 不需要数据库
	if cmd == "hash-password" {
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		password := fs.String("password", "", "plain password")
		_ = fs.Parse(args)
		hash, err := etadmin.HashPassword(*password)
		if err != nil {
			log.Fatalf("hash password failed: %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	db, err := mysql.Open(cfg.MySQL)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer mysql.Close(db)

	ctx := context.Background()
	switch cmd {
	case "migrate":
		if err := mysql.Migrate(db); err != nil {
			log.Fatalf("migrate failed: %v", err)
		}
		log.Println("schema migrated")

	case "create-admin":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		username := fs.String("username", "", "admin username")
		password := fs.String("password", "", "plain password")
		email := fs.String("email", "", "admin email")
		fullName := fs.String("full-name", "", "display name")
		_ = fs.Parse(args)

		admin, err := adminService(db, cfg).CreateAdmin(ctx, *username, *password, *email, *fullName)
		if err != nil {
			log.Fatalf("create admin failed: %v", err)
		}
		log.Printf("admin %q created with id %d", admin.Username, admin.ID)

	case "list-admins":
		admins, err := adminService(db, cfg).ListAdmins(ctx)
		if err != nil {
			log.Fatalf("list admins failed: %v", err)
		}
		rows := make([][]string, 0, len(admins))
		for _, a := range admins {
			lastLogin := "-"
			if a.LastLogin != nil {
				lastLogin = a.LastLogin.Format(time.DateTime)
			}
			rows = append(rows, []string{
				strconv.FormatInt(a.ID, 10), a.Username, a.Email, a.FullName,
				strconv.FormatBool(a.IsActive), lastLogin,
			})
		}
		render([]string{"ID", "Username", "Email", "Full name", "Active", "Last login"}, rows)

	case "list-products":
		products, err := svproduct.NewProductService(mdproduct.NewProductModule(rpproduct.NewProductRepository(db))).ListAll(ctx)
		if err != nil {
			log.Fatalf("list products failed: %v", err)
		}
		rows := make([][]string, 0, len(products))
		for _, p := range products {
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10), p.Shape,
				strconv.FormatFloat(p.BasePrice, 'f', 2, 64),
				strconv.FormatBool(p.IsActive), p.ImageURL, p.CreatedAt.Format(time.DateTime),
			})
		}
		render([]string{"ID", "Shape", "Price", "Active", "Image", "Created"}, rows)

	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func adminService(db *gorm.DB, cfg *config.Config) *svadmin.AdminService {
	nop := logger.NewNop()
	orderRepo := rporder.NewOrderRepository(db)
	return svadmin.NewAdminService(
		mdadmin.NewAdminModule(rpadmin.NewAdminRepository(db), authx.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)),
		mdorder.NewOrderModule(rptx.NewGormTransactor(db), orderRepo, idgen.NewOrderNumberGenerator()),
		mdnotify.NewNotifyModule(nil, nil, "", nop),
		nop,
	)
}

func render(header []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			log.Fatalf("render table failed: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		log.Fatalf("render table failed: %v", err)
	}
}
