package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"values-md/internal/config"
	"values-md/internal/db"
	"values-md/internal/domain"
	"values-md/internal/repository"
	"values-md/internal/service"
)

func main() {
	dataDir := flag.String("data", "data", "directory with motifs.csv, frameworks.csv and dilemmas.csv")
	flag.Parse()

	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer pool.Close()

	motifRepo := repository.NewPgMotifRepository(pool)
	frameworkRepo := repository.NewPgFrameworkRepository(pool)
	dilemmaRepo := repository.NewPgDilemmaRepository(pool)
	adminRepo := repository.NewPgAdminRepository(pool)

	if err := seedMotifs(ctx, motifRepo, *dataDir+"/motifs.csv"); err != nil {
		log.Fatalf("seed motifs: %v", err)
	}
	if err := seedFrameworks(ctx, frameworkRepo, *dataDir+"/frameworks.csv"); err != nil {
		log.Fatalf("seed frameworks: %v", err)
	}
	if err := seedDilemmas(ctx, dilemmaRepo, *dataDir+"/dilemmas.csv"); err != nil {
		log.Fatalf("seed dilemmas: %v", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		adminSvc := service.NewAdminService(nil, adminRepo)
		if err := adminSvc.EnsureAdmin(ctx, adminEmail, adminPassword); err != nil {
			log.Fatalf("seed admin: %v", err)
		}
		log.Printf("admin account ensured: %s", strings.ToLower(strings.TrimSpace(adminEmail)))
	} else {
		log.Printf("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
	}
}

// readCSV devuelve las filas como mapas encabezado -> valor.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[strings.TrimSpace(header)] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func seedMotifs(ctx context.Context, repo repository.MotifRepository, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		if row["motif_id"] == "" {
			continue
		}
		weight, _ := strconv.ParseFloat(row["weight"], 64)
		motif := domain.Motif{
			ID:                   row["motif_id"],
			Name:                 row["name"],
			Category:             row["category"],
			Subcategory:          row["subcategory"],
			Description:          row["description"],
			LexicalIndicators:    row["lexical_indicators"],
			BehavioralIndicators: row["behavioral_indicators"],
			LogicalPatterns:      row["logical_patterns"],
			ConflictsWith:        row["conflicts_with"],
			SynergiesWith:        row["synergies_with"],
			Weight:               weight,
			CulturalVariance:     row["cultural_variance"],
			CognitiveLoad:        row["cognitive_load"],
		}
		if err := repo.Upsert(ctx, motif); err != nil {
			return err
		}
		count++
	}
	log.Printf("seeded %d motifs", count)
	return nil
}

func seedFrameworks(ctx context.Context, repo repository.FrameworkRepository, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		if row["framework_id"] == "" {
			continue
		}
		framework := domain.Framework{
			ID:                row["framework_id"],
			Name:              row["name"],
			Tradition:         row["tradition"],
			KeyPrinciple:      row["key_principle"],
			DecisionMethod:    row["decision_method"],
			LexicalIndicators: row["lexical_indicators"],
			HistoricalFigure:  row["historical_figure"],
			ModernApplication: row["modern_application"],
		}
		if err := repo.Upsert(ctx, framework); err != nil {
			return err
		}
		count++
	}
	log.Printf("seeded %d frameworks", count)
	return nil
}

func seedDilemmas(ctx context.Context, repo repository.DilemmaRepository, path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return err
	}

	count := 0
	for _, row := range rows {
		if row["dilemma_id"] == "" {
			continue
		}
		difficulty, _ := strconv.Atoi(row["difficulty"])
		dilemma := domain.Dilemma{
			ID:              row["dilemma_id"],
			Domain:          row["domain"],
			GeneratorType:   row["generator_type"],
			Difficulty:      difficulty,
			Title:           row["title"],
			Scenario:        row["scenario"],
			ChoiceA:         row["choice_a"],
			ChoiceAMotif:    row["choice_a_motif"],
			ChoiceB:         row["choice_b"],
			ChoiceBMotif:    row["choice_b_motif"],
			ChoiceC:         row["choice_c"],
			ChoiceCMotif:    row["choice_c_motif"],
			ChoiceD:         row["choice_d"],
			ChoiceDMotif:    row["choice_d_motif"],
			CulturalContext: row["cultural_context"],
			CreatedAt:       time.Now().UTC(),
		}
		if err := repo.Create(ctx, dilemma); err != nil {
			return err
		}
		count++
	}
	log.Printf("seeded %d dilemmas", count)
	return nil
}
