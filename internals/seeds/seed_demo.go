// internals/seeds/seed_demo.go
package seeds

import (
	"log"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"surfschool_backend/internals/constants"
	classModel "surfschool_backend/internals/features/classes/model"
	instructorModel "surfschool_backend/internals/features/instructors/model"
	paymentModel "surfschool_backend/internals/features/payments/model"
	reservationModel "surfschool_backend/internals/features/reservations/model"
	schoolModel "surfschool_backend/internals/features/schools/model"
	studentModel "surfschool_backend/internals/features/students/model"
	userModel "surfschool_backend/internals/features/users/model"
)

// RunDemoSeed carga el fixture de dos escuelas (Lima y Trujillo) con usuarios,
// clases, reservas y pagos cruzados. Idempotente: se cuelga de los emails.
func RunDemoSeed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		pwd := string(hash)

		mkUser := func(name, email, role string) (userModel.UserModel, error) {
			u := userModel.UserModel{
				UserName:     name,
				UserEmail:    email,
				UserPassword: pwd,
				UserRole:     role,
				UserCanSwim:  true,
			}
			err := tx.Where("user_email = ?", email).FirstOrCreate(&u).Error
			return u, err
		}

		if _, err := mkUser("Admin General", "admin@surfschool.pe", constants.RoleAdmin); err != nil {
			return err
		}

		// ---- Lima Surf Academy ----
		limaOwner, err := mkUser("Carla Mendoza", "carla@limasurf.pe", constants.RoleSchoolAdmin)
		if err != nil {
			return err
		}
		limaSchool := schoolModel.SchoolModel{
			SchoolOwnerUserID: limaOwner.UserID,
			SchoolName:        "Lima Surf Academy",
			SchoolLocation:    "Miraflores, Lima",
		}
		if err := tx.Where("school_owner_user_id = ?", limaOwner.UserID).
			FirstOrCreate(&limaSchool).Error; err != nil {
			return err
		}

		limaCoachUser, err := mkUser("Diego Paredes", "diego@limasurf.pe", constants.RoleInstructor)
		if err != nil {
			return err
		}
		limaCoach := instructorModel.InstructorModel{
			InstructorUserID:          limaCoachUser.UserID,
			InstructorSchoolID:        limaSchool.SchoolID,
			InstructorYearsExperience: 8,
			InstructorSpecialties:     pq.StringArray{"longboard", "olas grandes"},
		}
		if err := tx.Where("instructor_user_id = ?", limaCoachUser.UserID).
			FirstOrCreate(&limaCoach).Error; err != nil {
			return err
		}

		// ---- Trujillo Waves ----
		trujOwner, err := mkUser("Marco Silva", "marco@trujillowaves.pe", constants.RoleSchoolAdmin)
		if err != nil {
			return err
		}
		trujSchool := schoolModel.SchoolModel{
			SchoolOwnerUserID: trujOwner.UserID,
			SchoolName:        "Trujillo Waves",
			SchoolLocation:    "Huanchaco, Trujillo",
		}
		if err := tx.Where("school_owner_user_id = ?", trujOwner.UserID).
			FirstOrCreate(&trujSchool).Error; err != nil {
			return err
		}

		trujCoachUser, err := mkUser("Lucía Torres", "lucia@trujillowaves.pe", constants.RoleInstructor)
		if err != nil {
			return err
		}
		trujCoach := instructorModel.InstructorModel{
			InstructorUserID:          trujCoachUser.UserID,
			InstructorSchoolID:        trujSchool.SchoolID,
			InstructorYearsExperience: 5,
			InstructorSpecialties:     pq.StringArray{"caballito de totora", "principiantes"},
		}
		if err := tx.Where("instructor_user_id = ?", trujCoachUser.UserID).
			FirstOrCreate(&trujCoach).Error; err != nil {
			return err
		}

		// ---- estudiantes (uno por escuela + uno independiente) ----
		ana, err := mkUser("Ana Quispe", "ana@mail.pe", constants.RoleStudent)
		if err != nil {
			return err
		}
		anaProfile := studentModel.StudentModel{
			StudentUserID:   ana.UserID,
			StudentSchoolID: &limaSchool.SchoolID,
		}
		if err := tx.Where("student_user_id = ?", ana.UserID).
			FirstOrCreate(&anaProfile).Error; err != nil {
			return err
		}

		jorge, err := mkUser("Jorge Vega", "jorge@mail.pe", constants.RoleStudent)
		if err != nil {
			return err
		}
		jorgeProfile := studentModel.StudentModel{
			StudentUserID:   jorge.UserID,
			StudentSchoolID: &trujSchool.SchoolID,
		}
		if err := tx.Where("student_user_id = ?", jorge.UserID).
			FirstOrCreate(&jorgeProfile).Error; err != nil {
			return err
		}

		// independiente: sin escuela, reserva donde quiera
		sofia, err := mkUser("Sofía Ramos", "sofia@mail.pe", constants.RoleStudent)
		if err != nil {
			return err
		}
		sofiaProfile := studentModel.StudentModel{StudentUserID: sofia.UserID}
		if err := tx.Where("student_user_id = ?", sofia.UserID).
			FirstOrCreate(&sofiaProfile).Error; err != nil {
			return err
		}

		// ---- clases ----
		nextWeek := time.Now().AddDate(0, 0, 7)
		limaClass := classModel.ClassModel{
			ClassSchoolID:     limaSchool.SchoolID,
			ClassInstructorID: &limaCoach.InstructorID,
			ClassTitle:        "Longboard al amanecer",
			ClassDate:         nextWeek,
			ClassDurationMin:  90,
			ClassCapacity:     6,
			ClassPrice:        100,
			ClassLevel:        classModel.ClassLevelIntermediate,
		}
		if err := tx.Where("class_school_id = ? AND class_title = ?", limaSchool.SchoolID, limaClass.ClassTitle).
			FirstOrCreate(&limaClass).Error; err != nil {
			return err
		}

		trujClass := classModel.ClassModel{
			ClassSchoolID:     trujSchool.SchoolID,
			ClassInstructorID: &trujCoach.InstructorID,
			ClassTitle:        "Primera ola en Huanchaco",
			ClassDate:         nextWeek.Add(24 * time.Hour),
			ClassDurationMin:  120,
			ClassCapacity:     8,
			ClassPrice:        85,
			ClassLevel:        classModel.ClassLevelBeginner,
		}
		if err := tx.Where("class_school_id = ? AND class_title = ?", trujSchool.SchoolID, trujClass.ClassTitle).
			FirstOrCreate(&trujClass).Error; err != nil {
			return err
		}

		// ---- reservas + pagos ($100 + $85 = $185 en total) ----
		anaRes := reservationModel.ReservationModel{
			ReservationClassID:      limaClass.ClassID,
			ReservationUserID:       ana.UserID,
			ReservationStatus:       reservationModel.ReservationStatusPaid,
			ReservationParticipants: 1,
		}
		if err := tx.Where("reservation_class_id = ? AND reservation_user_id = ?", limaClass.ClassID, ana.UserID).
			FirstOrCreate(&anaRes).Error; err != nil {
			return err
		}
		anaPay := paymentModel.PaymentModel{
			PaymentReservationID: anaRes.ReservationID,
			PaymentAmount:        100,
			PaymentStatus:        paymentModel.PaymentStatusPaid,
			PaymentMethod:        "manual",
		}
		if err := tx.Where("payment_reservation_id = ?", anaRes.ReservationID).
			FirstOrCreate(&anaPay).Error; err != nil {
			return err
		}

		jorgeRes := reservationModel.ReservationModel{
			ReservationClassID:      trujClass.ClassID,
			ReservationUserID:       jorge.UserID,
			ReservationStatus:       reservationModel.ReservationStatusPaid,
			ReservationParticipants: 1,
		}
		if err := tx.Where("reservation_class_id = ? AND reservation_user_id = ?", trujClass.ClassID, jorge.UserID).
			FirstOrCreate(&jorgeRes).Error; err != nil {
			return err
		}
		jorgePay := paymentModel.PaymentModel{
			PaymentReservationID: jorgeRes.ReservationID,
			PaymentAmount:        85,
			PaymentStatus:        paymentModel.PaymentStatusPaid,
			PaymentMethod:        "manual",
		}
		if err := tx.Where("payment_reservation_id = ?", jorgeRes.ReservationID).
			FirstOrCreate(&jorgePay).Error; err != nil {
			return err
		}

		// la independiente cruza de tenant: reserva en Trujillo sin afiliación
		sofiaRes := reservationModel.ReservationModel{
			ReservationClassID:      trujClass.ClassID,
			ReservationUserID:       sofia.UserID,
			ReservationStatus:       reservationModel.ReservationStatusPending,
			ReservationParticipants: 1,
		}
		if err := tx.Where("reservation_class_id = ? AND reservation_user_id = ?", trujClass.ClassID, sofia.UserID).
			FirstOrCreate(&sofiaRes).Error; err != nil {
			return err
		}

		log.Println("🌱 seed demo listo: 2 escuelas, 3 estudiantes, 2 clases, 3 reservas")
		return nil
	})
}
