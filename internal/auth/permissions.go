package auth

// RoleAdmin - единственная роль в системе, отдается фронтенду в /user
const RoleAdmin = "admin"
