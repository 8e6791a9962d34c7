package wire

import (
	"Atmosphere/internal/api"
	"Atmosphere/internal/api/config"
	"Atmosphere/internal/api/handler"
	"Atmosphere/internal/job"
	"Atmosphere/internal/pkg/cron"
	"Atmosphere/internal/pkg/es"
	"Atmosphere/internal/pkg/kafka"
	appmongo "Atmosphere/internal/pkg/mongo"
	"Atmosphere/internal/pkg/ws"
	"Atmosphere/internal/repository"
	"Atmosphere/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRolesRepo := repository.NewUserRolesRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	engagementRepo := repository.NewEngagementRepo(db)
	targetRepo := repository.NewTargetRepo(db)
	startupRepo := repository.NewStartupRepo(db)
	postRepo := repository.NewPostRepo(db)
	reelRepo := repository.NewReelRepo(db)
	commentRepo := repository.NewCommentRepo(db)

	notificationRepo := appmongo.NewNotificationRepo(mongoDB)
	startupESRepo := es.NewStartupRepo(es.Client)

	hub := ws.NewHub()
	notifier := service.NewNotifier(notificationRepo, hub)

	otpService := service.NewOtpService()
	userService := service.NewUserService(userRepo, roleRepo, userRolesRepo, otpService)
	followService := service.NewUserFollowService(userFollowRepo, userRepo, userService)
	engagementService := service.NewEngagementService(engagementRepo, targetRepo, userRolesRepo, userFollowRepo, notifier)
	notificationService := service.NewNotificationService(notificationRepo)
	trendingService := service.NewTrendingService(startupRepo, engagementRepo, commentRepo)
	startupService := service.NewStartupService(startupRepo, startupESRepo)
	commentService := service.NewCommentService(commentRepo, startupRepo, notifier)
	contentService := service.NewContentService(postRepo, reelRepo)
	mediaService := service.NewMediaService()

	handlers := &api.Handlers{
		User:         handler.NewUserHandler(userService, otpService),
		Follow:       handler.NewFollowHandler(followService),
		Engagement:   handler.NewEngagementHandler(engagementService),
		Notification: handler.NewNotificationHandler(notificationService),
		Startup:      handler.NewStartupHandler(startupService, trendingService),
		Comment:      handler.NewCommentHandler(commentService),
		Content:      handler.NewContentHandler(contentService),
		Media:        handler.NewMediaHandler(mediaService),
		Ws:           handler.NewWsHandler(hub),
	}

	router := api.NewRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, startupESRepo)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewCounterReconcileJob(engagementRepo, commentRepo, startupRepo),
		job.NewFollowCountJob(userFollowRepo),
		job.NewHottestRefreshJob(trendingService),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
