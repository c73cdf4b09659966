package models

// UserWithAllData joins a user with everything that references it.
// MemberTypeIDs are the raw tier ids of the user's profiles.
type UserWithAllData struct {
	User
	Posts         []Post    `json:"posts"`
	Profiles      []Profile `json:"profiles"`
	MemberTypeIDs []string  `json:"memberTypeIds"`
}

// UserWithProfile joins a user with its profile and the profiles of the
// users listed in its SubscribedToUserIDs.
type UserWithProfile struct {
	User
	Profile          *Profile  `json:"profile"`
	FollowedProfiles []Profile `json:"followedProfiles"`
}

// UserWithPosts joins a user with its posts and the posts of the users listed
// in its SubscribedToUserIDs.
type UserWithPosts struct {
	User
	Posts         []Post `json:"posts"`
	FollowedPosts []Post `json:"followedPosts"`
}

// UserFollowSummary is the second level of the follow graph.
type UserFollowSummary struct {
	User
	Followers []User `json:"followers"`
	Following []User `json:"following"`
}

// UserWithFollowers is the first level of the follow graph.
type UserWithFollowers struct {
	User
	Followers []UserFollowSummary `json:"followers"`
	Following []UserFollowSummary `json:"following"`
}
