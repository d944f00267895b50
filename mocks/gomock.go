package mocks

//go:generate mockgen -destination=./storageMocks/storage_mock.go -package=storageMocks github.com/Sorolassina/mca-api/storage Storage
//go:generate mockgen -source=./../emargement/repositories/membership/membership.go -destination=./repoMocks/membership_mock.go -package=repoMocks
//go:generate mockgen -source=./../emargement/services/notification/notification.go -destination=./serviceMocks/notification_mock.go -package=serviceMocks
//go:generate mockgen -source=./../emargement/services/token/token.go -destination=./serviceMocks/token_mock.go -package=serviceMocks
//go:generate mockgen -source=./../emargement/services/emargement/emargement.go -destination=./serviceMocks/emargement_mock.go -package=serviceMocks
//go:generate mockgen -source=./../emargement/services/roster/roster.go -destination=./serviceMocks/roster_mock.go -package=serviceMocks
