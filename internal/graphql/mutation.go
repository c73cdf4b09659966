package graphql

import (
	graphql "github.com/graph-gophers/graphql-go"

	"socialdb/internal/models"
)

type createUserInput struct {
	FirstName string
	LastName  string
	Email     string
}

type updateUserInput struct {
	FirstName           *string
	LastName            *string
	Email               *string
	SubscribedToUserIDs *[]graphql.ID
}

type createProfileInput struct {
	Avatar       *string
	Sex          *string
	Birthday     *int32
	Country      *string
	Street       *string
	City         *string
	MemberTypeID graphql.ID
	UserID       graphql.ID
}

type updateProfileInput struct {
	Avatar       *string
	Sex          *string
	Birthday     *int32
	Country      *string
	Street       *string
	City         *string
	MemberTypeID *graphql.ID
}

type createPostInput struct {
	Title   string
	Content string
	UserID  graphql.ID
}

type updatePostInput struct {
	Title   *string
	Content *string
}

type updateMemberTypeInput struct {
	Discount        *int32
	MonthPostsLimit *int32
}

type subscriptionArgs struct {
	UserID       graphql.ID
	SubscriberID graphql.ID
}

func (r *Resolver) CreateUser(args struct{ User createUserInput }) (*userResolver, error) {
	dto := models.CreateUserDTO{
		FirstName: args.User.FirstName,
		LastName:  args.User.LastName,
		Email:     args.User.Email,
	}
	if err := r.validate.Struct(dto); err != nil {
		return nil, wrapErr(err)
	}
	u, err := r.svc.Users.Create(dto)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &userResolver{u: *u}, nil
}

func (r *Resolver) CreateProfile(args struct{ Profile createProfileInput }) (*profileResolver, error) {
	in := args.Profile
	dto := models.CreateProfileDTO{
		Avatar:       in.Avatar,
		Sex:          in.Sex,
		Birthday:     toInt(in.Birthday),
		Country:      in.Country,
		Street:       in.Street,
		City:         in.City,
		MemberTypeID: string(in.MemberTypeID),
		UserID:       string(in.UserID),
	}
	if err := r.validate.Struct(dto); err != nil {
		return nil, wrapErr(err)
	}
	p, err := r.svc.Profiles.Create(dto)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &profileResolver{p: *p}, nil
}

func (r *Resolver) CreatePost(args struct{ Post createPostInput }) (*postResolver, error) {
	dto := models.CreatePostDTO{
		Title:   args.Post.Title,
		Content: args.Post.Content,
		UserID:  string(args.Post.UserID),
	}
	if err := r.validate.Struct(dto); err != nil {
		return nil, wrapErr(err)
	}
	p, err := r.svc.Posts.Create(dto)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &postResolver{p: *p}, nil
}

func (r *Resolver) UpdateUser(args struct {
	ID     graphql.ID
	Update updateUserInput
}) (*userResolver, error) {
	in := args.Update
	dto := models.ChangeUserDTO{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	if in.SubscribedToUserIDs != nil {
		dto.SubscribedToUserIDs = fromIDs(*in.SubscribedToUserIDs)
	}
	if err := r.validate.Struct(dto); err != nil {
		return nil, wrapErr(err)
	}
	u, err := r.svc.Users.Change(string(args.ID), dto)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &userResolver{u: *u}, nil
}

func (r *Resolver) UpdateProfile(args struct {
	ID     graphql.ID
	Update updateProfileInput
}) (*profileResolver, error) {
	in := args.Update
	dto := models.ChangeProfileDTO{
		Avatar:   in.Avatar,
		Sex:      in.Sex,
		Birthday: toInt(in.Birthday),
		Country:  in.Country,
		Street:   in.Street,
		City:     in.City,
	}
	if in.MemberTypeID != nil {
		id := string(*in.MemberTypeID)
		dto.MemberTypeID = &id
	}
	if err := r.validate.Struct(dto); err != nil {
		return nil, wrapErr(err)
	}
	p, err := r.svc.Profiles.Change(string(args.ID), dto)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &profileResolver{p: *p}, nil
}

func (r *Resolver) UpdatePost(args struct {
	ID     graphql.ID
	Update updatePostInput
}) (*postResolver, error) {
	dto := models.ChangePostDTO{Title: args.Update.Title, Content: args.Update.Content}
	if err := r.validate.Struct(dto); err != nil {
		return nil, wrapErr(err)
	}
	p, err := r.svc.Posts.Change(string(args.ID), dto)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &postResolver{p: *p}, nil
}

func (r *Resolver) UpdateMemberType(args struct {
	ID     graphql.ID
	Update updateMemberTypeInput
}) (*memberTypeResolver, error) {
	dto := models.ChangeMemberTypeDTO{
		Discount:        toInt(args.Update.Discount),
		MonthPostsLimit: toInt(args.Update.MonthPostsLimit),
	}
	if err := r.validate.Struct(dto); err != nil {
		return nil, wrapErr(err)
	}
	m, err := r.svc.MemberTypes.Change(string(args.ID), dto)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &memberTypeResolver{m: *m}, nil
}

// SubscribeTo makes subscriberID follow userID and returns userID's record.
func (r *Resolver) SubscribeTo(args subscriptionArgs) (*userResolver, error) {
	_, u, err := r.svc.Integrity.Subscribe(string(args.SubscriberID), string(args.UserID))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &userResolver{u: *u}, nil
}

// UnsubscribeFrom removes the edge SubscribeTo created.
func (r *Resolver) UnsubscribeFrom(args subscriptionArgs) (*userResolver, error) {
	u, err := r.svc.Integrity.Unsubscribe(string(args.SubscriberID), string(args.UserID))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &userResolver{u: *u}, nil
}

func (r *Resolver) DeleteUser(args idArgs) (*userResolver, error) {
	u, err := r.svc.Integrity.DeleteUser(string(args.ID))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &userResolver{u: *u}, nil
}

func (r *Resolver) DeleteProfile(args idArgs) (*profileResolver, error) {
	p, err := r.svc.Profiles.Delete(string(args.ID))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &profileResolver{p: *p}, nil
}

func (r *Resolver) DeletePost(args idArgs) (*postResolver, error) {
	p, err := r.svc.Posts.Delete(string(args.ID))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &postResolver{p: *p}, nil
}

func toInt(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func fromIDs(ids []graphql.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
