package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"course-explorer/internal/app"
	"course-explorer/internal/catalog"
	"course-explorer/internal/config"
	"course-explorer/internal/export"
	"course-explorer/internal/sftpclient"
)

func main() {
	var (
		outPath    = flag.String("out", "", "output csv path (default <export.out_dir>/CAREERS.csv)")
		course     = flag.String("course", "", "only export the course with this id")
		uploadSFTP = flag.Bool("sftp", false, "upload the generated CSV via SFTP")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := app.NewLogger(cfg.Log)

	rootCtx, rootCancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer rootCancel()

	cat, err := app.LoadCatalog(rootCtx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	rows, err := collectRows(cat, *course)
	if err != nil {
		log.Fatal(err)
	}

	path := *outPath
	if path == "" {
		path = filepath.Join(cfg.Export.OutDir, "CAREERS.csv")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal(err)
		}
	}

	if err := export.WriteCareersCSVFile(path, rows); err != nil {
		log.Fatal(err)
	}
	logger.Info("wrote careers csv", slog.String("path", path), slog.Int("rows", len(rows)))

	if !*uploadSFTP {
		return
	}

	s := cfg.Export.SFTP
	upCfg := sftpclient.Config{
		Host:                  s.Host,
		Port:                  s.Port,
		User:                  s.User,
		Pass:                  s.Pass,
		RemoteDir:             s.RemoteDir,
		KnownHostsPath:        s.KnownHostsPath,
		InsecureIgnoreHostKey: s.InsecureIgnoreHostKey,
	}
	remoteName := filepath.Base(path)

	upCtx, upCancel := context.WithTimeout(rootCtx, 5*time.Minute)
	defer upCancel()

	if err := sftpclient.UploadFile(upCtx, upCfg, path, remoteName); err != nil {
		log.Fatal(err)
	}
	logger.Info("uploaded careers csv",
		slog.String("target", fmt.Sprintf("sftp://%s:%d%s/%s", upCfg.Host, upCfg.Port, upCfg.RemoteDir, remoteName)),
	)
}

// collectRows flattens every course, or only courseID when set.
func collectRows(cat *catalog.Catalog, courseID string) ([]export.CareerRow, error) {
	if courseID != "" {
		idx, ok := cat.Index(courseID)
		if !ok {
			return nil, fmt.Errorf("unknown course %q", courseID)
		}
		return export.CareerRows(idx.Title(), idx.AllCareers()), nil
	}

	rows := []export.CareerRow{}
	seen := map[string]bool{}
	for _, c := range cat.Courses("", "") {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		idx, ok := cat.Index(c.ID)
		if !ok {
			continue
		}
		rows = append(rows, export.CareerRows(idx.Title(), idx.AllCareers())...)
	}
	return rows, nil
}
