package sequence

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/registry"
)

// Entity names
const (
	EntityBusiness        = "business"
	EntityClient          = "client"
	EntityCandidate       = "candidate"
	EntityAdmin           = "admin"
	EntityEmployee        = "employee"
	EntityBDE             = "bde"
	EntityTelecaller      = "telecaller"
	EntityDigitalMarketer = "digitalmarketer"
	EntityCategory        = "category"
	EntityCity            = "city"
	EntitySource          = "source"
	EntityBlog            = "blog"
	EntityJobPost         = "jobpost"
	EntityWhatsApp        = "whatsapp"
	EntityApplication     = "application"
	EntityWebsiteLead     = "websitelead"
)

// UserCodeField holds the identifier of staff accounts of every role.
const UserCodeField = "userCode"

// CodeKeyField holds the user code without its time suffix (see CodeKey).
const CodeKeyField = "codeKey"

// Definition describes how one entity's identifiers are allocated.
type Definition struct {
	Entity     string
	Prefix     string
	Field      string
	Collection string
	Strategy   string
	// Filter narrows the documents sharing a collection (staff roles).
	Filter bson.M
	Suffix bool
	// KeyField is unique over CodeKey(identifier); set for collections holding suffixed codes.
	KeyField string
}

// Definitions lists every entity with a human-readable identifier.
func Definitions(cols global.MongoDB_CollectionNames) []Definition {
	role := func(r string) bson.M { return bson.M{"role": r} }
	return []Definition{
		{Entity: EntityBusiness, Prefix: "businessId", Field: "businessId", Collection: cols.Businesses, Strategy: StrategyCounter},
		{Entity: EntityClient, Prefix: "clientId", Field: "clientId", Collection: cols.Clients, Strategy: StrategyCounter},
		{Entity: EntityCandidate, Prefix: "candidateId", Field: "candidateId", Collection: cols.Candidates, Strategy: StrategyScan},
		{Entity: EntityAdmin, Prefix: "adminId", Field: UserCodeField, Collection: cols.Users, Strategy: StrategyScan, Filter: role("admin")},
		{Entity: EntityEmployee, Prefix: "employeeId", Field: UserCodeField, Collection: cols.Users, Strategy: StrategyScan, Filter: role("employee")},
		{Entity: EntityBDE, Prefix: "bdeid", Field: UserCodeField, Collection: cols.Users, Strategy: StrategyScan, Filter: role("bde"), Suffix: true, KeyField: CodeKeyField},
		{Entity: EntityTelecaller, Prefix: "telecallerId", Field: UserCodeField, Collection: cols.Users, Strategy: StrategyScan, Filter: role("telecaller")},
		{Entity: EntityDigitalMarketer, Prefix: "digitalMarketerId", Field: UserCodeField, Collection: cols.Users, Strategy: StrategyScan, Filter: role("digitalmarketer")},
		{Entity: EntityCategory, Prefix: "categoryId", Field: "categoryId", Collection: cols.Categories, Strategy: StrategyScan},
		{Entity: EntityCity, Prefix: "cityId", Field: "cityId", Collection: cols.Cities, Strategy: StrategyScan},
		{Entity: EntitySource, Prefix: "sourceId", Field: "sourceId", Collection: cols.Sources, Strategy: StrategyScan},
		{Entity: EntityBlog, Prefix: "blogId", Field: "blogId", Collection: cols.Blogs, Strategy: StrategyScan},
		{Entity: EntityJobPost, Prefix: "jobpostId", Field: "jobpostId", Collection: cols.JobPosts, Strategy: StrategyScan},
		{Entity: EntityWhatsApp, Prefix: "whatsappId", Field: "whatsappId", Collection: cols.WhatsAppTemplates, Strategy: StrategyScan},
		{Entity: EntityApplication, Prefix: "applicationId", Field: "applicationId", Collection: cols.Applications, Strategy: StrategyScan},
		{Entity: EntityWebsiteLead, Prefix: "websiteLeadId", Field: "websiteLeadId", Collection: cols.WebsiteLeads, Strategy: StrategyScan},
	}
}

// Allocators holds the allocator of every entity, keyed by entity name.
var Allocators = registry.NewRegistry[Allocator]()

// Build creates the allocator described by def on top of db. BDE suffixes use loc.
func Build(def Definition, db *mongo.Database, counters *mongo.Collection, loc *time.Location) (Allocator, error) {
	switch def.Strategy {
	case StrategyCounter:
		return &CounterAllocator{
			Name:     def.Entity,
			Prefix:   def.Prefix,
			IDField:  def.Field,
			Width:    DefaultWidth,
			Counters: &MongoCounterStore{Collection: counters},
		}, nil
	case StrategyScan:
		a := &ScanAllocator{
			Name:     def.Entity,
			Prefix:   def.Prefix,
			IDField:  def.Field,
			KeyField: def.KeyField,
			Width:    DefaultWidth,
			Store: &MongoIDLister{
				Collection: db.Collection(def.Collection),
				Field:      def.Field,
				Filter:     def.Filter,
			},
		}
		if def.Suffix {
			if loc == nil {
				loc = time.UTC
			}
			a.Suffix = func(now time.Time) string { return BDESuffix(now.In(loc)) }
		}
		return a, nil
	}
	return nil, fmt.Errorf("unknown allocation strategy %q for %s", def.Strategy, def.Entity)
}

// RegisterAll builds every allocator of defs and registers it in Allocators.
func RegisterAll(defs []Definition, db *mongo.Database, counters *mongo.Collection, loc *time.Location) error {
	for _, def := range defs {
		a, err := Build(def, db, counters, loc)
		if err != nil {
			return err
		}
		if _, err := Allocators.Register(def.Entity, a); err != nil {
			return fmt.Errorf("register allocator %s: %w", def.Entity, err)
		}
	}
	return nil
}

// For returns the registered allocator of entity.
func For(entity string) (Allocator, error) {
	return Allocators.MustGet(entity)
}
