package initsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	businessmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/models"
	candidatemodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/models"
	clientmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/client/models"
	contentmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/models"
	referencemodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/reference/models"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	websiteleadmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/database"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
)

// Models maps each collection to the model whose index tags describe it.
func Models(cols global.MongoDB_CollectionNames) map[string]interface{} {
	return map[string]interface{}{
		cols.Users:             staffmodels.User{},
		cols.Businesses:        businessmodels.Business{},
		cols.Clients:           clientmodels.Client{},
		cols.Candidates:        candidatemodels.Candidate{},
		cols.Cities:            referencemodels.City{},
		cols.Categories:        referencemodels.Category{},
		cols.Sources:           referencemodels.Source{},
		cols.Blogs:             contentmodels.Blog{},
		cols.JobPosts:          contentmodels.JobPost{},
		cols.Applications:      contentmodels.Application{},
		cols.WhatsAppTemplates: contentmodels.WhatsAppTemplate{},
		cols.WebsiteLeads:      websiteleadmodels.WebsiteLead{},
	}
}

// EnsureSchema creates missing collections and every declared index.
func EnsureSchema(ctx context.Context, db *mongo.Database, cols global.MongoDB_CollectionNames) error {
	if err := database.EnsureCollections(ctx, db, cols.All()); err != nil {
		return err
	}
	for name, model := range Models(cols) {
		if err := database.CreateIndexes(ctx, db.Collection(name), model); err != nil {
			return fmt.Errorf("indexes of %s: %w", name, err)
		}
	}
	if err := database.CreateAdditionalIndexes(ctx, db); err != nil {
		return fmt.Errorf("additional indexes: %w", err)
	}
	logger.WithModule("init").Info("Collections and indexes ensured")
	return nil
}

// RegisterCollections registers every collection of cols in the global registry.
func RegisterCollections(db *mongo.Database, cols global.MongoDB_CollectionNames) error {
	log := logger.WithModule("init")
	for _, name := range cols.All() {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			return fmt.Errorf("failed to register collection %s: %w", name, err)
		}
		if !registered {
			log.Warnf("Collection %s already registered", name)
		}
	}
	log.Info("Initialized collection registry")
	return nil
}
