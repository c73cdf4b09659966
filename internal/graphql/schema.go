package graphql

// Schema is the GraphQL schema served at /graphql. Top-level fields are
// nullable so that one failing field does not void its siblings.
const Schema = `
schema {
  query: Query
  mutation: Mutation
}

type User {
  id: ID!
  firstName: String!
  lastName: String!
  email: String!
  # ids of the users that subscribed to this user
  subscribedToUserIds: [ID!]!
}

type Profile {
  id: ID!
  avatar: String
  sex: String
  birthday: Int
  country: String
  street: String
  city: String
  memberTypeId: ID!
  userId: ID!
}

type Post {
  id: ID!
  title: String!
  content: String!
  userId: ID!
}

type MemberType {
  id: ID!
  discount: Int!
  monthPostsLimit: Int!
}

type UserWithAllData {
  id: ID!
  firstName: String!
  lastName: String!
  email: String!
  subscribedToUserIds: [ID!]!
  posts: [Post!]!
  profiles: [Profile!]!
  memberTypeIds: [ID!]!
}

type UserWithProfile {
  id: ID!
  firstName: String!
  lastName: String!
  email: String!
  subscribedToUserIds: [ID!]!
  profile: Profile
  followedProfiles: [Profile!]!
}

type UserWithPosts {
  id: ID!
  firstName: String!
  lastName: String!
  email: String!
  subscribedToUserIds: [ID!]!
  posts: [Post!]!
  followedPosts: [Post!]!
}

type UserFollowSummary {
  id: ID!
  firstName: String!
  lastName: String!
  email: String!
  subscribedToUserIds: [ID!]!
  followers: [User!]!
  following: [User!]!
}

type UserWithFollowers {
  id: ID!
  firstName: String!
  lastName: String!
  email: String!
  subscribedToUserIds: [ID!]!
  followers: [UserFollowSummary!]!
  following: [UserFollowSummary!]!
}

type Query {
  getAllUsers: [User!]
  getAllProfiles: [Profile!]
  getAllPosts: [Post!]
  getAllMemberTypes: [MemberType!]
  getUserById(id: ID!): User
  getProfileById(id: ID!): Profile
  getPostById(id: ID!): Post
  getMemberTypeById(id: ID!): MemberType
  getUsersWithAllData: [UserWithAllData!]
  getAllUserWithAllDataById(id: ID!): UserWithAllData
  getUserWithProfile: [UserWithProfile!]
  getUserWithPosts(id: ID!): UserWithPosts
  getUsersWithAllFollowers: [UserWithFollowers!]
}

input CreateUser {
  firstName: String!
  lastName: String!
  email: String!
}

input UpdateUser {
  firstName: String
  lastName: String
  email: String
  subscribedToUserIds: [ID!]
}

input CreateProfile {
  avatar: String
  sex: String
  birthday: Int
  country: String
  street: String
  city: String
  memberTypeId: ID!
  userId: ID!
}

input UpdateProfile {
  avatar: String
  sex: String
  birthday: Int
  country: String
  street: String
  city: String
  memberTypeId: ID
}

input CreatePost {
  title: String!
  content: String!
  userId: ID!
}

input UpdatePost {
  title: String
  content: String
}

input UpdateMemberType {
  discount: Int
  monthPostsLimit: Int
}

type Mutation {
  createUser(user: CreateUser!): User
  createProfile(profile: CreateProfile!): Profile
  createPost(post: CreatePost!): Post
  updateUser(id: ID!, update: UpdateUser!): User
  updateProfile(id: ID!, update: UpdateProfile!): Profile
  updatePost(id: ID!, update: UpdatePost!): Post
  updateMemberType(id: ID!, update: UpdateMemberType!): MemberType
  # subscriberID starts following userID
  subscribeTo(userID: ID!, subscriberID: ID!): User
  unsubscribeFrom(userID: ID!, subscriberID: ID!): User
  deleteUser(id: ID!): User
  deleteProfile(id: ID!): Profile
  deletePost(id: ID!): Post
}
`
