// Package businesssvc - business leads: listing with the composed filter, status counts,
// creation with counter-allocated ids, visit outcomes and exports.
package businesssvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	businessdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/models"
	basemodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/models"
	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	staffsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// MaxExportRows caps a spreadsheet export.
const MaxExportRows = 50000

// Actor is the signed-in account performing an operation.
type Actor struct {
	ID   primitive.ObjectID
	Role string
}

// Scope returns the visibility of the actor.
func (a Actor) Scope() Scope {
	return ScopeFor(a.Role, a.ID)
}

// BusinessService manages the businesses collection.
type BusinessService struct {
	*basesvc.BaseServiceMongoImpl[models.Business]
	users      CodeLookup
	allocators func(entity string) (sequence.Allocator, error)
	insert     func(ctx context.Context, b models.Business) (models.Business, error)
	loc        *time.Location
	cols       global.MongoDB_CollectionNames
}

// NewBusinessService creates the service over the registered businesses collection.
func NewBusinessService() (*BusinessService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Businesses)
	if !exist {
		return nil, fmt.Errorf("failed to get businesses collection: %w", common.ErrNotFound)
	}
	users, err := staffsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	loc := time.UTC
	if global.MongoDB_ServerConfig != nil {
		loc = global.MongoDB_ServerConfig.Location()
	}
	base := basesvc.NewBaseServiceMongo[models.Business](collection)
	return &BusinessService{
		BaseServiceMongoImpl: base,
		users:                users,
		allocators:           sequence.For,
		insert:               base.InsertOne,
		loc:                  loc,
		cols:                 global.MongoDB_ColNames,
	}, nil
}

// Location is the time zone dates are read in.
func (s *BusinessService) Location() *time.Location {
	return s.loc
}

// ====================================
// LISTING
// ====================================

// Counter counts documents matching a filter.
type Counter interface {
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

// CountStatuses fills the statusCount block: the grand total ignores filter, every bucket
// is counted under filter with its status predicate ANDed in.
func CountStatuses(ctx context.Context, counter Counter, filter bson.M) (models.StatusCount, error) {
	var out models.StatusCount
	var err error
	if out.GrandTotalBusinesses, err = counter.CountDocuments(ctx, bson.M{}); err != nil {
		return out, err
	}
	buckets := []struct {
		status string
		dst    *int64
	}{
		{models.StatusFollowup, &out.FollowupCount},
		{models.StatusAppointmentGenerated, &out.AppointmentCount},
		{models.StatusVisited, &out.VisitCount},
		{models.StatusDealClosed, &out.DealCloseCount},
	}
	for _, b := range buckets {
		n, err := counter.CountDocuments(ctx, And(filter, models.StatusPredicate(b.status)))
		if err != nil {
			return out, err
		}
		*b.dst = n
	}
	return out, nil
}

// lookupRef replaces the ObjectID in field with a Ref read from collection from.
func lookupRef(from, field, codeField string, extra ...string) []bson.M {
	project := bson.M{"name": 1, "code": "$" + codeField}
	for _, f := range extra {
		project[f] = 1
	}
	return []bson.M{
		{"$lookup": bson.M{
			"from": from,
			"let":  bson.M{"ref": "$" + field},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$ref"}}}},
				bson.M{"$project": project},
			},
			"as": field,
		}},
		{"$unwind": bson.M{"path": "$" + field, "preserveNullAndEmptyArrays": true}},
	}
}

// ViewPipeline matches filter, orders and pages the result (limit 0 = no limit) and
// populates every reference.
func ViewPipeline(cols global.MongoDB_CollectionNames, filter bson.M, sort bson.D, skip, limit int64) []bson.M {
	pipeline := []bson.M{{"$match": filter}}
	if len(sort) > 0 {
		pipeline = append(pipeline, bson.M{"$sort": sort})
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.M{"$skip": skip})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.M{"$limit": limit})
	}
	pipeline = append(pipeline, lookupRef(cols.Cities, "city", "cityId")...)
	pipeline = append(pipeline, lookupRef(cols.Categories, "category", "categoryId")...)
	pipeline = append(pipeline, lookupRef(cols.Sources, "source", "sourceId")...)
	for _, field := range []string{"assignedTo", "leadBy", "createdBy"} {
		pipeline = append(pipeline, lookupRef(cols.Users, field, sequence.UserCodeField, "role", "mobileNumber")...)
	}
	return pipeline
}

// Compose resolves the user references of q and returns its filter within scope.
func (s *BusinessService) Compose(ctx context.Context, q ListQuery, scope Scope) (bson.M, error) {
	return Build(ctx, q, scope, NewUserResolver(s.users))
}

// ListStore is what a listing reads from the businesses collection.
type ListStore interface {
	Counter
	Aggregate(ctx context.Context, pipeline interface{}, out interface{}) error
}

// ListPage reads the page of q under filter: the matching total, the populated rows and the
// status counts. A page whose offset overflows comes back empty with the totals intact.
func ListPage(ctx context.Context, store ListStore, cols global.MongoDB_CollectionNames, filter bson.M, q ListQuery) (*models.ListResult, error) {
	total, err := store.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := []models.BusinessView{}
	if skip, ok := q.Skip(); ok {
		if err := store.Aggregate(ctx, ViewPipeline(cols, filter, q.Sort(), skip, q.Limit), &views); err != nil {
			return nil, err
		}
	}

	counts, err := CountStatuses(ctx, store, filter)
	if err != nil {
		return nil, err
	}

	return &models.ListResult{
		Businesses:  views,
		TotalPages:  basemodels.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		TotalCount:  total,
		StatusCount: counts,
	}, nil
}

// List returns one page of businesses matching q within scope, with totals and status
// counts under the same filter.
func (s *BusinessService) List(ctx context.Context, q ListQuery, scope Scope) (*models.ListResult, error) {
	filter, err := s.Compose(ctx, q, scope)
	if err != nil {
		return nil, err
	}
	return ListPage(ctx, s, s.cols, filter, q)
}

// StatusCounts returns the statusCount block for q within scope.
func (s *BusinessService) StatusCounts(ctx context.Context, q ListQuery, scope Scope) (models.StatusCount, error) {
	filter, err := s.Compose(ctx, q, scope)
	if err != nil {
		return models.StatusCount{}, err
	}
	return CountStatuses(ctx, s, filter)
}

// FindView returns the populated business matching key within scope.
func (s *BusinessService) FindView(ctx context.Context, key string, scope Scope) (models.BusinessView, error) {
	var views []models.BusinessView
	filter := scope.Apply(basesvc.KeyFilter(models.FieldBusinessID, key))
	if err := s.Aggregate(ctx, ViewPipeline(s.cols, filter, nil, 0, 1), &views); err != nil {
		return models.BusinessView{}, err
	}
	if len(views) == 0 {
		return models.BusinessView{}, common.ErrNotFound
	}
	return views[0], nil
}

// ====================================
// WRITES
// ====================================

func invalidField(field, reason string) error {
	return common.NewError(common.ErrCodeValidationInput, common.MsgInvalidInput, common.StatusBadRequest, map[string]string{field: reason})
}

func checkStatus(status string) error {
	if status != "" && !models.IsStatus(status) {
		return invalidField("status", "must be one of: "+strings.Join(models.Statuses, ", "))
	}
	return nil
}

func (s *BusinessService) parseDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, ok := utility.ParseDate(value, s.loc)
	if !ok {
		return nil, invalidField(field, "must be YYYY-MM-DD or RFC3339")
	}
	return &t, nil
}

// Create stores a new business under a freshly allocated businessId. The actor becomes
// createdBy; telecallers and digital marketers default to leadBy, BDEs to assignedTo.
func (s *BusinessService) Create(ctx context.Context, input *businessdto.BusinessCreateInput, actor Actor) (models.Business, error) {
	if err := checkStatus(input.Status); err != nil {
		return models.Business{}, err
	}
	followUp, err := s.parseDate("followUpDate", input.FollowUpDate)
	if err != nil {
		return models.Business{}, err
	}
	appointment, err := s.parseDate("appointmentDate", input.AppointmentDate)
	if err != nil {
		return models.Business{}, err
	}

	b := models.Business{
		BusinessName:      strings.TrimSpace(input.BusinessName),
		ContactPersonName: strings.TrimSpace(input.ContactPersonName),
		MobileNumber:      strings.ReplaceAll(input.MobileNumber, " ", ""),
		Email:             strings.ToLower(strings.TrimSpace(input.Email)),
		Address:           input.Address,
		City:              utility.String2ObjectID(input.City),
		Category:          utility.String2ObjectID(input.Category),
		Source:            utility.String2ObjectID(input.Source),
		Status:            input.Status,
		FollowUpDate:      followUp,
		AppointmentDate:   appointment,
		Remarks:           input.Remarks,
		AssignedTo:        utility.String2ObjectID(input.AssignedTo),
		LeadBy:            utility.String2ObjectID(input.LeadBy),
		CreatedBy:         actor.ID,
	}
	if b.Status == "" {
		b.Status = models.StatusFreshData
	}
	switch actor.Role {
	case staffmodels.RoleTelecaller, staffmodels.RoleDigitalMarketer:
		if b.LeadBy.IsZero() {
			b.LeadBy = actor.ID
		}
	case staffmodels.RoleBDE:
		if b.AssignedTo.IsZero() {
			b.AssignedTo = actor.ID
		}
	}

	alloc, err := s.allocators(sequence.EntityBusiness)
	if err != nil {
		return models.Business{}, err
	}
	return sequence.Insert(ctx, alloc, func(ctx context.Context, id string) (models.Business, error) {
		b.BusinessID = id
		return s.insert(ctx, b)
	})
}

// updateSet collects the non-empty fields of input.
func (s *BusinessService) updateSet(input *businessdto.BusinessUpdateInput) (bson.M, error) {
	if err := checkStatus(input.Status); err != nil {
		return nil, err
	}
	set := bson.M{}
	strs := []struct {
		field, value string
	}{
		{"businessName", strings.TrimSpace(input.BusinessName)},
		{"contactPersonName", strings.TrimSpace(input.ContactPersonName)},
		{"mobileNumber", strings.ReplaceAll(input.MobileNumber, " ", "")},
		{"email", strings.ToLower(strings.TrimSpace(input.Email))},
		{"address", input.Address},
		{"status", input.Status},
		{"remarks", input.Remarks},
	}
	for _, f := range strs {
		if f.value != "" {
			set[f.field] = f.value
		}
	}
	refs := []struct {
		field, value string
	}{
		{"city", input.City},
		{"category", input.Category},
		{"source", input.Source},
		{"assignedTo", input.AssignedTo},
		{"leadBy", input.LeadBy},
	}
	for _, f := range refs {
		if id := utility.String2ObjectID(f.value); !id.IsZero() {
			set[f.field] = id
		}
	}
	dates := []struct {
		field, value string
	}{
		{"followUpDate", input.FollowUpDate},
		{"appointmentDate", input.AppointmentDate},
	}
	for _, f := range dates {
		t, err := s.parseDate(f.field, f.value)
		if err != nil {
			return nil, err
		}
		if t != nil {
			set[f.field] = *t
		}
	}
	return set, nil
}

// Update applies the non-empty fields of input to the business matching key within scope.
func (s *BusinessService) Update(ctx context.Context, key string, input *businessdto.BusinessUpdateInput, scope Scope) (models.Business, error) {
	set, err := s.updateSet(input)
	if err != nil {
		return models.Business{}, err
	}
	filter := scope.Apply(basesvc.KeyFilter(models.FieldBusinessID, key))
	if len(set) == 0 {
		return s.FindOne(ctx, filter, nil)
	}
	return s.UpdateOne(ctx, filter, &basesvc.UpdateData{Set: set})
}

// UpdateVisitResult records the outcome of a visit. The visit date defaults to now.
func (s *BusinessService) UpdateVisitResult(ctx context.Context, key string, input *businessdto.VisitResultInput, actor Actor) (models.Business, error) {
	if !models.IsStatus(input.Reason) {
		return models.Business{}, invalidField("reason", "must be one of: "+strings.Join(models.Statuses, ", "))
	}
	if err := checkStatus(input.Status); err != nil {
		return models.Business{}, err
	}
	visitDate, err := s.parseDate("visitDate", input.VisitDate)
	if err != nil {
		return models.Business{}, err
	}
	now := time.Now()
	if visitDate == nil {
		visitDate = &now
	}

	set := bson.M{"visit_result": models.VisitResult{
		Reason:    input.Reason,
		VisitDate: visitDate,
		Remarks:   input.Remarks,
		UpdatedBy: actor.ID,
		UpdatedAt: &now,
	}}
	if input.Status != "" {
		set["status"] = input.Status
	}
	filter := actor.Scope().Apply(basesvc.KeyFilter(models.FieldBusinessID, key))
	return s.UpdateOne(ctx, filter, &basesvc.UpdateData{Set: set})
}

// Delete removes the business matching key.
func (s *BusinessService) Delete(ctx context.Context, key string) (models.Business, error) {
	return s.DeleteOne(ctx, basesvc.KeyFilter(models.FieldBusinessID, key))
}

// ====================================
// ANALYTICS
// ====================================

// Analytics groups the businesses matching q within scope by status and by lead source.
func (s *BusinessService) Analytics(ctx context.Context, q ListQuery, scope Scope) (*models.Analytics, error) {
	filter, err := s.Compose(ctx, q, scope)
	if err != nil {
		return nil, err
	}
	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	byStatus := []models.Bucket{}
	if err := s.Aggregate(ctx, GroupPipeline(filter, "$status", "", "", ""), &byStatus); err != nil {
		return nil, err
	}
	bySource := []models.Bucket{}
	if err := s.Aggregate(ctx, GroupPipeline(filter, "$source", s.cols.Sources, "name", "Unknown"), &bySource); err != nil {
		return nil, err
	}

	counts, err := CountStatuses(ctx, s, filter)
	if err != nil {
		return nil, err
	}
	return &models.Analytics{Total: total, ByStatus: byStatus, BySource: bySource, StatusCount: counts}, nil
}

// GroupPipeline counts the documents matching filter per value of expr. With from set,
// the group key is an ObjectID replaced by the labelField of the referenced document, or
// fallback when it does not resolve.
func GroupPipeline(filter bson.M, expr, from, labelField, fallback string) []bson.M {
	pipeline := []bson.M{
		{"$match": filter},
		{"$group": bson.M{"_id": expr, "count": bson.M{"$sum": 1}}},
	}
	key := interface{}("$_id")
	if from != "" {
		pipeline = append(pipeline, bson.M{"$lookup": bson.M{
			"from":         from,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "ref",
		}})
		key = bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$ref." + labelField, 0}}, fallback}}
	}
	return append(pipeline,
		bson.M{"$project": bson.M{"_id": 0, "key": key, "count": 1}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "key", Value: 1}}},
	)
}
