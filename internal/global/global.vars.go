package global

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/therebootai/rebootcrmbackend-sub000/config"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/registry"
)

// MongoDB_CollectionNames holds the collection name of every domain.
type MongoDB_CollectionNames struct {
	Users             string // staff accounts of every role
	Counters          string // named sequence counters
	Businesses        string
	Clients           string
	Candidates        string
	Cities            string
	Categories        string
	Sources           string
	Blogs             string
	JobPosts          string
	Applications      string
	WhatsAppTemplates string
	WebsiteLeads      string
}

// Process-wide state
var Validate *validator.Validate                                 // request validator
var MongoDB_Session *mongo.Client                                // shared client
var MongoDB_ServerConfig *config.Configuration                   // loaded configuration
var MongoDB_ColNames MongoDB_CollectionNames = DefaultColNames() // collection names

// Registries
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // collections by name

// DefaultColNames returns the collection names used in every environment.
func DefaultColNames() MongoDB_CollectionNames {
	return MongoDB_CollectionNames{
		Users:             "users",
		Counters:          "counters",
		Businesses:        "businesses",
		Clients:           "clients",
		Candidates:        "candidates",
		Cities:            "cities",
		Categories:        "categories",
		Sources:           "sources",
		Blogs:             "blogs",
		JobPosts:          "jobposts",
		Applications:      "applications",
		WhatsAppTemplates: "whatsapp_templates",
		WebsiteLeads:      "website_leads",
	}
}

// All returns every configured collection name.
func (n MongoDB_CollectionNames) All() []string {
	v := reflect.ValueOf(n)
	names := make([]string, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		names = append(names, v.Field(i).String())
	}
	return names
}
