package businesssvc

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/models"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/models"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// DefaultListLimit is the page size of the business listing.
const DefaultListLimit = 20

// sortFields maps the accepted sortBy values to document fields.
var sortFields = map[string]string{
	"businessName":    "businessName",
	"businessname":    "businessName",
	"mobileNumber":    "mobileNumber",
	"createdAt":       "createdAt",
	"appointmentDate": "appointmentDate",
	"followUpDate":    "followUpDate",
	"status":          "status",
}

// DateRange is an optional inclusive range. From is the start of its day, To the end of its
// day.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

func (r DateRange) filter() bson.M {
	cond := bson.M{}
	if r.From != nil {
		cond["$gte"] = *r.From
	}
	if r.To != nil {
		cond["$lte"] = *r.To
	}
	return cond
}

// ListQuery is the parsed query string of the business listing.
type ListQuery struct {
	Search       string
	MobileNumber string
	BusinessName string

	Cities     []primitive.ObjectID
	Categories []primitive.ObjectID
	Sources    []primitive.ObjectID

	// raw user references: ObjectID or user code
	AssignedTo string
	LeadBy     string
	CreatedBy  string

	Status string

	FollowUp    DateRange
	Appointment DateRange
	Created     DateRange
	Visit       DateRange

	SortField string
	SortOrder int

	Limit int64
	Page  int64
}

// Skip returns the number of documents before the page. ok is false for a page so far out
// that its offset overflows; that page is empty.
func (q ListQuery) Skip() (skip int64, ok bool) {
	return basemodels.Skip(q.Page, q.Limit)
}

// Sort returns the sort document, with _id as a tie breaker for stable pages.
func (q ListQuery) Sort() bson.D {
	return bson.D{{Key: q.SortField, Value: q.SortOrder}, {Key: "_id", Value: q.SortOrder}}
}

func parseRange(get func(string) string, startKey, endKey string, loc *time.Location) DateRange {
	var r DateRange
	if t, ok := utility.ParseDate(get(startKey), loc); ok {
		from := utility.StartOfDay(t)
		r.From = &from
	}
	if t, ok := utility.ParseDate(get(endKey), loc); ok {
		to := utility.EndOfDay(t)
		r.To = &to
	}
	return r
}

// ParseListQuery reads the listing parameters through get (typically fiber's c.Query).
// Malformed values are dropped: bad ids, unparseable dates, unknown sort fields and
// non-positive limit/page fall back to their defaults. limit is capped at
// basemodels.MaxPageLimit. sortOrder=asc applies to the default createdAt order too.
func ParseListQuery(get func(key string) string, loc *time.Location) ListQuery {
	q := ListQuery{
		Search:       strings.TrimSpace(get("search")),
		MobileNumber: strings.TrimSpace(get("mobileNumber")),
		BusinessName: strings.TrimSpace(get("businessname")),
		Cities:       utility.ParseObjectIDList(get("city")),
		Categories:   utility.ParseObjectIDList(get("category")),
		Sources:      utility.ParseObjectIDList(get("source")),
		AssignedTo:   strings.TrimSpace(get("assignedTo")),
		LeadBy:       strings.TrimSpace(get("leadBy")),
		CreatedBy:    strings.TrimSpace(get("createdBy")),
		Status:       strings.TrimSpace(get("status")),
		FollowUp:     parseRange(get, "followUpStartDate", "followUpEndDate", loc),
		Appointment:  parseRange(get, "appointmentStartDate", "appointmentEndDate", loc),
		Created:      parseRange(get, "createdStartDate", "createdEndDate", loc),
		Visit:        parseRange(get, "visitStartDate", "visitEndDate", loc),
		SortField:    "createdAt",
		SortOrder:    -1,
		Limit:        min(int64(utility.PositiveInt(get("limit"), DefaultListLimit)), basemodels.MaxPageLimit),
		Page:         int64(utility.PositiveInt(get("page"), 1)),
	}
	if field, ok := sortFields[strings.TrimSpace(get("sortBy"))]; ok {
		q.SortField = field
	}
	if strings.EqualFold(strings.TrimSpace(get("sortOrder")), "asc") {
		q.SortOrder = 1
	}
	return q
}

// ====================================
// USER REFERENCES
// ====================================

// CodeLookup resolves a user code to an account id.
type CodeLookup interface {
	FindByCode(ctx context.Context, code string) (primitive.ObjectID, bool, error)
}

type resolved struct {
	id primitive.ObjectID
	ok bool
}

// UserResolver turns a user reference (ObjectID or user code) into an ObjectID, memoising
// lookups. Create one per request.
type UserResolver struct {
	lookup CodeLookup
	memo   map[string]resolved
}

// NewUserResolver creates a resolver backed by lookup.
func NewUserResolver(lookup CodeLookup) *UserResolver {
	return &UserResolver{lookup: lookup, memo: make(map[string]resolved)}
}

// Resolve returns the account id of ref. ok is false for an empty or unknown reference.
func (r *UserResolver) Resolve(ctx context.Context, ref string) (primitive.ObjectID, bool, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return primitive.NilObjectID, false, nil
	}
	if id, err := primitive.ObjectIDFromHex(ref); err == nil {
		return id, true, nil
	}
	if hit, ok := r.memo[ref]; ok {
		return hit.id, hit.ok, nil
	}
	if r.lookup == nil {
		return primitive.NilObjectID, false, nil
	}
	id, ok, err := r.lookup.FindByCode(ctx, ref)
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	r.memo[ref] = resolved{id: id, ok: ok}
	return id, ok, nil
}

// ====================================
// SCOPE
// ====================================

// Scope restricts what an account may see: Field must equal UserID. The zero Scope sees
// everything.
type Scope struct {
	Field  string
	UserID primitive.ObjectID
}

// ScopeFor returns the visibility of role. BDEs see what is assigned to them, telecallers
// and digital marketers their own leads, employees what they created.
func ScopeFor(role string, userID primitive.ObjectID) Scope {
	switch role {
	case staffmodels.RoleBDE:
		return Scope{Field: "assignedTo", UserID: userID}
	case staffmodels.RoleTelecaller, staffmodels.RoleDigitalMarketer:
		return Scope{Field: "leadBy", UserID: userID}
	case staffmodels.RoleEmployee:
		return Scope{Field: "createdBy", UserID: userID}
	}
	return Scope{}
}

// IsZero reports whether the scope allows everything.
func (s Scope) IsZero() bool {
	return s.Field == ""
}

// Apply ANDs the scope into filter.
func (s Scope) Apply(filter bson.M) bson.M {
	if s.IsZero() {
		return filter
	}
	return And(filter, bson.M{s.Field: s.UserID})
}

// ====================================
// COMPOSER
// ====================================

func containsFold(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// And combines filters, skipping empty ones.
func And(filters ...bson.M) bson.M {
	var parts bson.A
	for _, f := range filters {
		if len(f) > 0 {
			parts = append(parts, f)
		}
	}
	switch len(parts) {
	case 0:
		return bson.M{}
	case 1:
		return parts[0].(bson.M)
	}
	return bson.M{"$and": parts}
}

// Build composes the filter of q within scope. Unresolvable user references leave their
// dimension unfiltered.
func Build(ctx context.Context, q ListQuery, scope Scope, users *UserResolver) (bson.M, error) {
	var conds []bson.M

	if q.Search != "" {
		pattern := containsFold(q.Search)
		conds = append(conds, bson.M{"$or": bson.A{
			bson.M{"businessName": pattern},
			bson.M{"contactPersonName": pattern},
			bson.M{"mobileNumber": pattern},
			bson.M{"remarks": pattern},
		}})
	}
	if q.MobileNumber != "" {
		conds = append(conds, bson.M{"mobileNumber": containsFold(q.MobileNumber)})
	}
	if q.BusinessName != "" {
		conds = append(conds, bson.M{"businessName": containsFold(q.BusinessName)})
	}

	for _, set := range []struct {
		field string
		ids   []primitive.ObjectID
	}{
		{"city", q.Cities},
		{"category", q.Categories},
		{"source", q.Sources},
	} {
		if len(set.ids) > 0 {
			conds = append(conds, bson.M{set.field: bson.M{"$in": set.ids}})
		}
	}

	for _, ref := range []struct{ field, value string }{
		{"assignedTo", q.AssignedTo},
		{"leadBy", q.LeadBy},
		{"createdBy", q.CreatedBy},
	} {
		id, ok, err := users.Resolve(ctx, ref.value)
		if err != nil {
			return nil, err
		}
		if ok {
			conds = append(conds, bson.M{ref.field: id})
		}
	}

	if q.Status != "" {
		conds = append(conds, models.StatusPredicate(q.Status))
	}

	for _, dr := range []struct {
		field string
		r     DateRange
	}{
		{"followUpDate", q.FollowUp},
		{"appointmentDate", q.Appointment},
		{"createdAt", q.Created},
		{models.FieldVisitDate, q.Visit},
	} {
		if !dr.r.IsZero() {
			conds = append(conds, bson.M{dr.field: dr.r.filter()})
		}
	}

	return scope.Apply(And(conds...)), nil
}
